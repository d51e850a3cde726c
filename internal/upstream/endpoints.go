package upstream

import (
	"context"

	"github.com/pysugar/oura-scraper/internal/db/models"
)

// Vendor collection paths. VO2 max keeps the vendor's own capitalisation.
const (
	PathPersonalInfo           = "personal_info"
	PathRingConfiguration      = "ring_configuration"
	PathDailyActivity          = "daily_activity"
	PathDailySleep             = "daily_sleep"
	PathDailyReadiness         = "daily_readiness"
	PathDailyStress            = "daily_stress"
	PathDailySpO2              = "daily_spo2"
	PathDailyCardiovascularAge = "daily_cardiovascular_age"
	PathDailyResilience        = "daily_resilience"
	PathSleep                  = "sleep"
	PathSleepTime              = "sleep_time"
	PathHeartRate              = "heartrate"
	PathVO2Max                 = "vO2_max"
	PathWorkout                = "workout"
	PathSession                = "session"
	PathEnhancedTag            = "enhanced_tag"
	PathRestModePeriod         = "rest_mode_period"
)

func (c *Client) PersonalInfo(ctx context.Context) (*models.PersonalInfo, error) {
	return getDocument[models.PersonalInfo](ctx, c, PathPersonalInfo)
}

func (c *Client) RingConfiguration(ctx context.Context) ([]models.RingConfiguration, error) {
	return getCollection[models.RingConfiguration](ctx, c, PathRingConfiguration, nil)
}

func (c *Client) DailyActivity(ctx context.Context, w DateWindow) ([]models.DailyActivity, error) {
	return getCollection[models.DailyActivity](ctx, c, PathDailyActivity, &w)
}

func (c *Client) DailySleep(ctx context.Context, w DateWindow) ([]models.DailySleep, error) {
	return getCollection[models.DailySleep](ctx, c, PathDailySleep, &w)
}

func (c *Client) DailyReadiness(ctx context.Context, w DateWindow) ([]models.DailyReadiness, error) {
	return getCollection[models.DailyReadiness](ctx, c, PathDailyReadiness, &w)
}

func (c *Client) DailyStress(ctx context.Context, w DateWindow) ([]models.DailyStress, error) {
	return getCollection[models.DailyStress](ctx, c, PathDailyStress, &w)
}

func (c *Client) DailySpO2(ctx context.Context, w DateWindow) ([]models.DailySpO2, error) {
	return getCollection[models.DailySpO2](ctx, c, PathDailySpO2, &w)
}

func (c *Client) DailyCardiovascularAge(ctx context.Context, w DateWindow) ([]models.DailyCardiovascularAge, error) {
	return getCollection[models.DailyCardiovascularAge](ctx, c, PathDailyCardiovascularAge, &w)
}

func (c *Client) DailyResilience(ctx context.Context, w DateWindow) ([]models.DailyResilience, error) {
	return getCollection[models.DailyResilience](ctx, c, PathDailyResilience, &w)
}

// Sleep returns detailed sleep periods, including naps.
func (c *Client) Sleep(ctx context.Context, w DateWindow) ([]models.Sleep, error) {
	return getCollection[models.Sleep](ctx, c, PathSleep, &w)
}

func (c *Client) SleepTime(ctx context.Context, w DateWindow) ([]models.SleepTime, error) {
	return getCollection[models.SleepTime](ctx, c, PathSleepTime, &w)
}

// HeartRate returns 5-minute heart rate samples. This is the largest collection.
func (c *Client) HeartRate(ctx context.Context, w DateWindow) ([]models.HeartRate, error) {
	return getCollection[models.HeartRate](ctx, c, PathHeartRate, &w)
}

func (c *Client) VO2Max(ctx context.Context, w DateWindow) ([]models.VO2Max, error) {
	return getCollection[models.VO2Max](ctx, c, PathVO2Max, &w)
}

func (c *Client) Workout(ctx context.Context, w DateWindow) ([]models.Workout, error) {
	return getCollection[models.Workout](ctx, c, PathWorkout, &w)
}

// Session returns guided and unguided sessions such as meditation or breathing.
func (c *Client) Session(ctx context.Context, w DateWindow) ([]models.Session, error) {
	return getCollection[models.Session](ctx, c, PathSession, &w)
}

func (c *Client) EnhancedTag(ctx context.Context, w DateWindow) ([]models.EnhancedTag, error) {
	return getCollection[models.EnhancedTag](ctx, c, PathEnhancedTag, &w)
}

func (c *Client) RestModePeriod(ctx context.Context, w DateWindow) ([]models.RestModePeriod, error) {
	return getCollection[models.RestModePeriod](ctx, c, PathRestModePeriod, &w)
}
