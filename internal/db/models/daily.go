package models

import (
	"time"

	"gorm.io/gorm"
)

type ActivityContributors struct {
	MeetDailyTargets  *int `json:"meet_daily_targets"`
	MoveEveryHour     *int `json:"move_every_hour"`
	RecoveryTime      *int `json:"recovery_time"`
	StayActive        *int `json:"stay_active"`
	TrainingFrequency *int `json:"training_frequency"`
	TrainingVolume    *int `json:"training_volume"`
}

type DailyActivity struct {
	ID                        string                `gorm:"primaryKey;size:64" json:"id"`
	Day                       string                `gorm:"size:10;not null;index" json:"day"`
	Score                     *int                  `gorm:"index" json:"score"`
	ActiveCalories            *int                  `json:"active_calories"`
	AverageMetMinutes         *float64              `json:"average_met_minutes"`
	Contributors              *ActivityContributors `gorm:"serializer:json;type:jsonb" json:"contributors"`
	EquivalentWalkingDistance *int                  `json:"equivalent_walking_distance"`
	HighActivityMetMinutes    *int                  `json:"high_activity_met_minutes"`
	HighActivityTime          *int                  `json:"high_activity_time"`
	InactivityAlerts          *int                  `json:"inactivity_alerts"`
	LowActivityMetMinutes     *int                  `json:"low_activity_met_minutes"`
	LowActivityTime           *int                  `json:"low_activity_time"`
	MediumActivityMetMinutes  *int                  `json:"medium_activity_met_minutes"`
	MediumActivityTime        *int                  `json:"medium_activity_time"`
	Met                       *Sample               `gorm:"serializer:json;type:jsonb" json:"met"`
	MetersToTarget            *int                  `json:"meters_to_target"`
	NonWearTime               *int                  `json:"non_wear_time"`
	RestingTime               *int                  `json:"resting_time"`
	SedentaryMetMinutes       *int                  `json:"sedentary_met_minutes"`
	SedentaryTime             *int                  `json:"sedentary_time"`
	Steps                     *int                  `gorm:"index" json:"steps"`
	TargetCalories            *int                  `json:"target_calories"`
	TargetMeters              *int                  `json:"target_meters"`
	TotalCalories             *int                  `json:"total_calories"`
	Class5Min                 *string               `gorm:"column:class_5_min;type:text" json:"class_5_min"`
	Timestamp                 *time.Time            `gorm:"index" json:"timestamp"`

	StayActive        *int `json:"-"`
	MoveEveryHour     *int `json:"-"`
	MeetDailyTargets  *int `json:"-"`
	TrainingFrequency *int `json:"-"`
	TrainingVolume    *int `json:"-"`
	RecoveryTime      *int `json:"-"`
}

func (DailyActivity) TableName() string { return "oura_daily_activity" }

// BeforeSave copies contributor scores into their flat columns.
func (d *DailyActivity) BeforeSave(*gorm.DB) error {
	c := d.Contributors
	if c == nil {
		c = &ActivityContributors{}
	}
	d.StayActive = c.StayActive
	d.MoveEveryHour = c.MoveEveryHour
	d.MeetDailyTargets = c.MeetDailyTargets
	d.TrainingFrequency = c.TrainingFrequency
	d.TrainingVolume = c.TrainingVolume
	d.RecoveryTime = c.RecoveryTime
	return nil
}

type SleepContributors struct {
	DeepSleep   *int `json:"deep_sleep"`
	Efficiency  *int `json:"efficiency"`
	Latency     *int `json:"latency"`
	RemSleep    *int `json:"rem_sleep"`
	Restfulness *int `json:"restfulness"`
	Timing      *int `json:"timing"`
	TotalSleep  *int `json:"total_sleep"`
}

type DailySleep struct {
	ID           string             `gorm:"primaryKey;size:64" json:"id"`
	Day          string             `gorm:"size:10;not null;index" json:"day"`
	Score        *int               `gorm:"index" json:"score"`
	Contributors *SleepContributors `gorm:"serializer:json;type:jsonb" json:"contributors"`
	Timestamp    *time.Time         `json:"timestamp"`

	DeepSleep   *int `json:"-"`
	Efficiency  *int `json:"-"`
	Latency     *int `json:"-"`
	RemSleep    *int `json:"-"`
	Restfulness *int `json:"-"`
	Timing      *int `json:"-"`
	TotalSleep  *int `json:"-"`
}

func (DailySleep) TableName() string { return "oura_daily_sleep" }

// BeforeSave copies contributor scores into their flat columns.
func (d *DailySleep) BeforeSave(*gorm.DB) error {
	c := d.Contributors
	if c == nil {
		c = &SleepContributors{}
	}
	d.DeepSleep = c.DeepSleep
	d.Efficiency = c.Efficiency
	d.Latency = c.Latency
	d.RemSleep = c.RemSleep
	d.Restfulness = c.Restfulness
	d.Timing = c.Timing
	d.TotalSleep = c.TotalSleep
	return nil
}

type ReadinessContributors struct {
	ActivityBalance     *int `json:"activity_balance"`
	BodyTemperature     *int `json:"body_temperature"`
	HRVBalance          *int `json:"hrv_balance"`
	PreviousDayActivity *int `json:"previous_day_activity"`
	PreviousNight       *int `json:"previous_night"`
	RecoveryIndex       *int `json:"recovery_index"`
	RestingHeartRate    *int `json:"resting_heart_rate"`
	SleepBalance        *int `json:"sleep_balance"`
	SleepRegularity     *int `json:"sleep_regularity"`
}

type DailyReadiness struct {
	ID                        string                 `gorm:"primaryKey;size:64" json:"id"`
	Day                       string                 `gorm:"size:10;not null;index" json:"day"`
	Score                     *int                   `gorm:"index" json:"score"`
	Contributors              *ReadinessContributors `gorm:"serializer:json;type:jsonb" json:"contributors"`
	TemperatureDeviation      *float64               `json:"temperature_deviation"`
	TemperatureTrendDeviation *float64               `json:"temperature_trend_deviation"`
	Timestamp                 *time.Time             `gorm:"index" json:"timestamp"`

	ActivityBalance     *int `json:"-"`
	BodyTemperature     *int `json:"-"`
	HRVBalance          *int `gorm:"column:hrv_balance" json:"-"`
	PreviousDayActivity *int `json:"-"`
	PreviousNight       *int `json:"-"`
	RecoveryIndex       *int `json:"-"`
	RestingHeartRate    *int `json:"-"`
	SleepBalance        *int `json:"-"`
	SleepRegularity     *int `json:"-"`
}

func (DailyReadiness) TableName() string { return "oura_daily_readiness" }

// BeforeSave copies contributor scores into their flat columns.
func (d *DailyReadiness) BeforeSave(*gorm.DB) error {
	c := d.Contributors
	if c == nil {
		c = &ReadinessContributors{}
	}
	d.ActivityBalance = c.ActivityBalance
	d.BodyTemperature = c.BodyTemperature
	d.HRVBalance = c.HRVBalance
	d.PreviousDayActivity = c.PreviousDayActivity
	d.PreviousNight = c.PreviousNight
	d.RecoveryIndex = c.RecoveryIndex
	d.RestingHeartRate = c.RestingHeartRate
	d.SleepBalance = c.SleepBalance
	d.SleepRegularity = c.SleepRegularity
	return nil
}

type DailyStress struct {
	ID           string  `gorm:"primaryKey;size:64" json:"id"`
	Day          string  `gorm:"size:10;not null;index" json:"day"`
	StressHigh   *int    `json:"stress_high"`
	RecoveryHigh *int    `json:"recovery_high"`
	DaySummary   *string `gorm:"size:50" json:"day_summary"`
}

func (DailyStress) TableName() string { return "oura_daily_stress" }

type SpO2Percentage struct {
	Average *float64 `json:"average"`
}

type DailySpO2 struct {
	ID                        string          `gorm:"primaryKey;size:64" json:"id"`
	Day                       string          `gorm:"size:10;not null;index" json:"day"`
	SpO2Percentage            *SpO2Percentage `gorm:"column:spo2_percentage;serializer:json;type:jsonb" json:"spo2_percentage"`
	BreathingDisturbanceIndex *float64        `json:"breathing_disturbance_index"`

	SpO2Average *float64 `gorm:"column:spo2_average" json:"-"`
}

func (DailySpO2) TableName() string { return "oura_daily_spo2" }

// BeforeSave copies the average saturation into its flat column.
func (d *DailySpO2) BeforeSave(*gorm.DB) error {
	d.SpO2Average = nil
	if d.SpO2Percentage != nil {
		d.SpO2Average = d.SpO2Percentage.Average
	}
	return nil
}

// DailyCardiovascularAge is keyed by day; the vendor id is optional.
type DailyCardiovascularAge struct {
	Day         string  `gorm:"primaryKey;size:10" json:"day"`
	ID          *string `gorm:"size:255" json:"id"`
	VascularAge *int    `gorm:"index" json:"vascular_age"`
}

func (DailyCardiovascularAge) TableName() string { return "oura_daily_cardiovascular_age" }

type ResilienceContributors struct {
	SleepRecovery   *float64 `json:"sleep_recovery"`
	DaytimeRecovery *float64 `json:"daytime_recovery"`
	Stress          *float64 `json:"stress"`
}

type DailyResilience struct {
	ID           string                  `gorm:"primaryKey;size:64" json:"id"`
	Day          string                  `gorm:"size:10;not null;index" json:"day"`
	Level        *string                 `gorm:"size:50;index" json:"level"`
	Contributors *ResilienceContributors `gorm:"serializer:json;type:jsonb" json:"contributors"`

	SleepRecovery   *float64 `json:"-"`
	DaytimeRecovery *float64 `json:"-"`
	Stress          *float64 `json:"-"`
}

func (DailyResilience) TableName() string { return "oura_daily_resilience" }

// BeforeSave copies contributor values into their flat columns.
func (d *DailyResilience) BeforeSave(*gorm.DB) error {
	c := d.Contributors
	if c == nil {
		c = &ResilienceContributors{}
	}
	d.SleepRecovery = c.SleepRecovery
	d.DaytimeRecovery = c.DaytimeRecovery
	d.Stress = c.Stress
	return nil
}
