package models

import (
	"time"

	"gorm.io/gorm"
)

// SleepReadiness is the readiness summary embedded in a sleep period.
type SleepReadiness struct {
	Contributors              *ReadinessContributors `json:"contributors"`
	Score                     *int                   `json:"score"`
	TemperatureDeviation      *float64               `json:"temperature_deviation"`
	TemperatureTrendDeviation *float64               `json:"temperature_trend_deviation"`
}

// Sleep is one detailed sleep period. A day may hold several.
type Sleep struct {
	ID                    string          `gorm:"primaryKey;size:64" json:"id"`
	Day                   string          `gorm:"size:10;not null;index" json:"day"`
	BedtimeStart          *time.Time      `gorm:"index" json:"bedtime_start"`
	BedtimeEnd            *time.Time      `json:"bedtime_end"`
	AverageBreath         *float64        `json:"average_breath"`
	AverageHeartRate      *float64        `json:"average_heart_rate"`
	AverageHRV            *int            `gorm:"column:average_hrv" json:"average_hrv"`
	AwakeTime             *int            `json:"awake_time"`
	DeepSleepDuration     *int            `json:"deep_sleep_duration"`
	Efficiency            *int            `json:"efficiency"`
	HeartRate             *Sample         `gorm:"serializer:json;type:jsonb" json:"heart_rate"`
	HRV                   *Sample         `gorm:"column:hrv;serializer:json;type:jsonb" json:"hrv"`
	Latency               *int            `json:"latency"`
	LightSleepDuration    *int            `json:"light_sleep_duration"`
	LowBatteryAlert       *bool           `json:"low_battery_alert"`
	LowestHeartRate       *int            `json:"lowest_heart_rate"`
	Movement30Sec         *string         `gorm:"column:movement_30_sec;type:text" json:"movement_30_sec"`
	Period                *int            `json:"period"`
	Readiness             *SleepReadiness `gorm:"serializer:json;type:jsonb" json:"readiness"`
	ReadinessScoreDelta   *float64        `json:"readiness_score_delta"`
	RemSleepDuration      *int            `json:"rem_sleep_duration"`
	RestlessPeriods       *int            `json:"restless_periods"`
	SleepPhase5Min        *string         `gorm:"column:sleep_phase_5_min;type:text" json:"sleep_phase_5_min"`
	SleepScoreDelta       *float64        `json:"sleep_score_delta"`
	SleepAlgorithmVersion *string         `gorm:"size:50" json:"sleep_algorithm_version"`
	TimeInBed             *int            `json:"time_in_bed"`
	TotalSleepDuration    *int            `json:"total_sleep_duration"`
	Type                  *string         `gorm:"size:50;index" json:"type"`
	RingID                *string         `gorm:"size:255" json:"ring_id"`
	SleepAnalysisReason   *string         `gorm:"size:50" json:"sleep_analysis_reason"`

	ReadinessScore *int `json:"-"`
}

func (Sleep) TableName() string { return "oura_sleep_data" }

// BeforeSave copies the embedded readiness score into its flat column.
func (s *Sleep) BeforeSave(*gorm.DB) error {
	s.ReadinessScore = nil
	if s.Readiness != nil {
		s.ReadinessScore = s.Readiness.Score
	}
	return nil
}

type OptimalBedtime struct {
	DayTz       *int `json:"day_tz"`
	EndOffset   *int `json:"end_offset"`
	StartOffset *int `json:"start_offset"`
}

type SleepTime struct {
	ID             string          `gorm:"primaryKey;size:64" json:"id"`
	Day            string          `gorm:"size:10;not null;index" json:"day"`
	OptimalBedtime *OptimalBedtime `gorm:"serializer:json;type:jsonb" json:"optimal_bedtime"`
	Recommendation *string         `gorm:"size:50" json:"recommendation"`
	Status         *string         `gorm:"size:50" json:"status"`
}

func (SleepTime) TableName() string { return "oura_sleep_time" }
