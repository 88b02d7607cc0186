package models

const (
	TableUsers     = "users"
	TableSessions  = "sessions"
	TableTodolists = "todolists"
	TableTasks     = "tasks"
)

// All returns every persistence model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&SessionModel{},
		&TodolistModel{},
		&TaskModel{},
	}
}
