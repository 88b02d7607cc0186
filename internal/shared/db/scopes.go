// Package db provides gorm transaction management and query scopes.
package db

import (
	"time"

	"gorm.io/gorm"
)

// NotExpired keeps rows whose expires_at lies after now.
//
//	db.Scopes(db.NotExpired(biztime.NowUTC())).Where("user_id = ?", id).Find(&rows)
func NotExpired(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at > ?", now)
	}
}

// OrderedBy applies a fixed ORDER BY clause. Callers pass constants only.
func OrderedBy(clause string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause)
	}
}
