package models

import "time"

// OAuthTokenRowID is the fixed key of the single oauth_tokens row.
const OAuthTokenRowID = 1

// OAuthToken holds the one active Oura token pair.
type OAuthToken struct {
	ID           uint      `gorm:"primaryKey;autoIncrement:false"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text;not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	TokenType    string    `gorm:"size:32"`
	UpdatedAt    time.Time
}

func (OAuthToken) TableName() string { return "oauth_tokens" }
