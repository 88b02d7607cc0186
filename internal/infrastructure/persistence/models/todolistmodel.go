package models

import "time"

type TodolistModel struct {
	ID          string  `gorm:"primarykey;size:32"`
	OwnerID     string  `gorm:"not null;size:32;index:idx_todolists_owner"`
	Title       string  `gorm:"not null;size:50"`
	Description *string `gorm:"size:500"`
	ImageURL    *string `gorm:"size:2048"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TodolistModel) TableName() string {
	return TableTodolists
}
