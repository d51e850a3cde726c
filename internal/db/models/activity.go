package models

import "time"

// HeartRate is a single sample, keyed by its timestamp.
type HeartRate struct {
	Timestamp time.Time `gorm:"primaryKey" json:"timestamp"`
	BPM       int       `gorm:"column:bpm;not null" json:"bpm"`
	Source    string    `gorm:"size:50;not null;index" json:"source"`
}

func (HeartRate) TableName() string { return "oura_heart_rate" }

type VO2Max struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	Day       string     `gorm:"size:10;not null;index" json:"day"`
	VO2Max    *float64   `gorm:"column:vo2_max" json:"vo2_max"`
	Timestamp *time.Time `json:"timestamp"`
}

func (VO2Max) TableName() string { return "oura_vo2_max" }

type Workout struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	Day           string     `gorm:"size:10;not null;index" json:"day"`
	Activity      *string    `gorm:"size:100;index" json:"activity"`
	Calories      *float64   `json:"calories"`
	Distance      *float64   `json:"distance"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Intensity     *string    `gorm:"size:50" json:"intensity"`
	Label         *string    `gorm:"size:255" json:"label"`
	Source        *string    `gorm:"size:50" json:"source"`
}

func (Workout) TableName() string { return "oura_workout" }

type Session struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	Day           string     `gorm:"size:10;not null;index" json:"day"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Type          *string    `gorm:"size:50;index" json:"type"`
	Mood          *string    `gorm:"size:50" json:"mood"`
	HeartRate     *Sample    `gorm:"serializer:json;type:jsonb" json:"heart_rate"`
	HeartRateVar  *Sample    `gorm:"column:hrv;serializer:json;type:jsonb" json:"heart_rate_variability"`
	MotionCount   *Sample    `gorm:"serializer:json;type:jsonb" json:"motion_count"`
}

func (Session) TableName() string { return "oura_session" }

type EnhancedTag struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	TagTypeCode *string    `gorm:"size:100" json:"tag_type_code"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	StartDay    string     `gorm:"size:10;index" json:"start_day"`
	EndDay      *string    `gorm:"size:10" json:"end_day"`
	Comment     *string    `gorm:"type:text" json:"comment"`
	CustomName  *string    `gorm:"size:255" json:"custom_name"`
}

func (EnhancedTag) TableName() string { return "oura_enhanced_tag" }

type RestModeEpisode struct {
	Tags      []string   `json:"tags"`
	Timestamp *time.Time `json:"timestamp"`
}

type RestModePeriod struct {
	ID        string            `gorm:"primaryKey;size:64" json:"id"`
	StartDay  string            `gorm:"size:10;index" json:"start_day"`
	EndDay    *string           `gorm:"size:10" json:"end_day"`
	StartTime *time.Time        `json:"start_time"`
	EndTime   *time.Time        `json:"end_time"`
	Episodes  []RestModeEpisode `gorm:"serializer:json;type:jsonb" json:"episodes"`
}

func (RestModePeriod) TableName() string { return "oura_rest_mode_period" }
