package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskModel struct {
	ID          string                      `gorm:"primarykey;size:32"`
	TodolistID  string                      `gorm:"not null;size:32;index:idx_tasks_todolist_order,priority:1"`
	Title       string                      `gorm:"not null;size:50"`
	Description *string                     `gorm:"size:200"`
	ImageURL    *string                     `gorm:"size:2048"`
	Completed   bool                        `gorm:"not null;default:false"`
	SortOrder   int                         `gorm:"column:sort_order;not null;default:0;index:idx_tasks_todolist_order,priority:2"`
	Priority    int                         `gorm:"not null;default:0"`
	DueDate     *time.Time                  `gorm:"index:idx_tasks_due_date"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TaskModel) TableName() string {
	return TableTasks
}
