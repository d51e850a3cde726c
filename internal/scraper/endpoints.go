package scraper

import (
	"context"

	"github.com/pysugar/oura-scraper/internal/db"
	"github.com/pysugar/oura-scraper/internal/upstream"
	"gorm.io/gorm"
)

// DefaultEndpoints covers every collection the client can read, in run order.
func DefaultEndpoints(c *upstream.Client) []Endpoint {
	return []Endpoint{
		document("personal_info", c.PersonalInfo),
		undated("ring_configuration", c.RingConfiguration),
		dated("daily_activity", c.DailyActivity),
		dated("daily_sleep", c.DailySleep),
		dated("daily_readiness", c.DailyReadiness),
		dated("daily_stress", c.DailyStress),
		dated("daily_spo2", c.DailySpO2),
		dated("daily_cardiovascular_age", c.DailyCardiovascularAge),
		dated("daily_resilience", c.DailyResilience),
		dated("sleep", c.Sleep),
		dated("sleep_time", c.SleepTime),
		dated("heartrate", c.HeartRate),
		dated("vo2_max", c.VO2Max),
		dated("workout", c.Workout),
		dated("session", c.Session),
		dated("enhanced_tag", c.EnhancedTag),
		dated("rest_mode_period", c.RestModePeriod),
	}
}

func dated[T any](name string, fetch func(context.Context, upstream.DateWindow) ([]T, error)) Endpoint {
	return Endpoint{
		Name: name,
		Run: func(ctx context.Context, tx *gorm.DB, w upstream.DateWindow) (int, error) {
			records, err := fetch(ctx, w)
			if err != nil {
				return 0, err
			}
			return db.Upsert(tx.WithContext(ctx), name, records)
		},
	}
}

func undated[T any](name string, fetch func(context.Context) ([]T, error)) Endpoint {
	return Endpoint{
		Name: name,
		Run: func(ctx context.Context, tx *gorm.DB, _ upstream.DateWindow) (int, error) {
			records, err := fetch(ctx)
			if err != nil {
				return 0, err
			}
			return db.Upsert(tx.WithContext(ctx), name, records)
		},
	}
}

func document[T any](name string, fetch func(context.Context) (*T, error)) Endpoint {
	return Endpoint{
		Name: name,
		Run: func(ctx context.Context, tx *gorm.DB, _ upstream.DateWindow) (int, error) {
			record, err := fetch(ctx)
			if err != nil {
				return 0, err
			}
			return db.UpsertOne(tx.WithContext(ctx), name, record)
		},
	}
}
