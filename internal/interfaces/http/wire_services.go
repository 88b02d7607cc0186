package http

import (
	todolistApp "github.com/tasknest/tasknest/internal/application/todolist"
	"github.com/tasknest/tasknest/internal/application/user"
	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/infrastructure/auth"
	"github.com/tasknest/tasknest/internal/infrastructure/scheduler"
	shareddb "github.com/tasknest/tasknest/internal/shared/db"
)

func (c *Container) initServices() {
	tx := shareddb.NewTransactionManager(c.db)

	c.sessions = helpers.NewSessionStore(
		c.repos.sessionRepo,
		auth.NewBcryptTokenHasher(c.cfg.Auth.Session.TokenHashCost),
		c.log.Named("sessions"),
	)

	c.authService = user.NewAuthService(user.AuthServiceDeps{
		UserRepo:     c.repos.userRepo,
		TodolistRepo: c.repos.todolistRepo,
		Sessions:     c.sessions,
		Passwords:    auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost),
		Tokens:       auth.NewJWTService(c.cfg.Auth.JWT),
		Tx:           tx,
		RememberTTL:  c.cfg.Auth.JWT.RememberTTL(),
		Logger:       c.log,
	})

	c.todolistService = todolistApp.NewService(
		c.repos.todolistRepo,
		c.repos.taskRepo,
		tx,
		c.cfg.Todolists.MaxPerUser,
		c.log,
	)
}

func (c *Container) initScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return err
	}
	manager.OnSessionsPurged(func(count int) {
		c.metrics.SessionsPurged.Add(float64(count))
	})
	if err := manager.RegisterSessionPurgeJob(c.authService, c.cfg.Session.PurgeInterval); err != nil {
		return err
	}
	c.schedulerManager = manager
	return nil
}
