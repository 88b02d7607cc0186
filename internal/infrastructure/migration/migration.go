package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tasknest/tasknest/internal/infrastructure/database"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// Manager runs the migration strategy suited to the database driver.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for MySQL and AutoMigrate for SQLite.
func NewManager(driver string, log logger.Interface) (*Manager, error) {
	var strategy Strategy
	switch driver {
	case database.DriverMySQL:
		strategy = NewGooseStrategy("mysql", log)
	case database.DriverSQLite:
		strategy = NewGormAutoMigrateStrategy(log)
	default:
		return nil, fmt.Errorf("no migration strategy for driver %q", driver)
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Goose returns the versioned strategy when one is in use.
func (m *Manager) Goose() (*GooseStrategy, bool) {
	g, ok := m.strategy.(*GooseStrategy)
	return g, ok
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
