// Package models defines one table per Oura API v2 collection.
//
// Each type decodes straight from the vendor JSON and is upserted by its
// primary key. Nested vendor objects are kept whole in a jsonb column and,
// where dashboards need them, copied into flat columns by a BeforeSave hook.
package models

import "time"

// Sample is the vendor's regularly sampled time series.
type Sample struct {
	Interval  float64    `json:"interval"`
	Items     []*float64 `json:"items"`
	Timestamp *time.Time `json:"timestamp"`
}

// All lists every endpoint model, in migration order.
func All() []any {
	return []any{
		&OAuthToken{},
		&PersonalInfo{},
		&RingConfiguration{},
		&DailyActivity{},
		&DailySleep{},
		&DailyReadiness{},
		&DailyStress{},
		&DailySpO2{},
		&DailyCardiovascularAge{},
		&DailyResilience{},
		&Sleep{},
		&SleepTime{},
		&HeartRate{},
		&VO2Max{},
		&Workout{},
		&Session{},
		&EnhancedTag{},
		&RestModePeriod{},
	}
}
