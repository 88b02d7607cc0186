package models

import "time"

// SessionModel represents the database persistence model for sessions.
type SessionModel struct {
	ID               string    `gorm:"primarykey;size:32"`
	UserID           string    `gorm:"not null;size:32;uniqueIndex:idx_sessions_user_device,priority:1"`
	DeviceID         string    `gorm:"not null;size:64;uniqueIndex:idx_sessions_user_device,priority:2"`
	RefreshTokenHash string    `gorm:"not null;size:255"`
	IPAddress        string    `gorm:"size:45"`
	UserAgent        string    `gorm:"size:512"`
	ExpiresAt        time.Time `gorm:"not null;index:idx_sessions_expires_at"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (SessionModel) TableName() string {
	return TableSessions
}
