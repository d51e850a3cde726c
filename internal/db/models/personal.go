package models

import "time"

type PersonalInfo struct {
	ID            string    `gorm:"primaryKey;size:255" json:"id"`
	Email         *string   `gorm:"size:255" json:"email"`
	Age           *int      `json:"age"`
	Weight        *float64  `json:"weight"`
	Height        *float64  `json:"height"`
	BiologicalSex *string   `gorm:"size:20" json:"biological_sex"`
	UpdatedAt     time.Time `json:"-"`
}

func (PersonalInfo) TableName() string { return "oura_personal_info" }

type RingConfiguration struct {
	ID              string     `gorm:"primaryKey;size:64" json:"id"`
	Color           *string    `gorm:"size:50" json:"color"`
	Design          *string    `gorm:"size:50" json:"design"`
	FirmwareVersion *string    `gorm:"size:50" json:"firmware_version"`
	HardwareType    *string    `gorm:"size:50" json:"hardware_type"`
	SetUpAt         *time.Time `json:"set_up_at"`
	Size            *int       `json:"size"`
}

func (RingConfiguration) TableName() string { return "oura_ring_configuration" }
