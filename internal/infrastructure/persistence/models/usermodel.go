package models

import "time"

// UserModel represents the database persistence model for users.
// Email holds the canonical (case-folded) address.
type UserModel struct {
	ID           string `gorm:"primarykey;size:32"`
	Email        string `gorm:"uniqueIndex:idx_users_email;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return TableUsers
}
