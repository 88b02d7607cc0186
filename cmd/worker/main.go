// Command worker purges expired sessions for deployments that run
// background work apart from the API servers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/infrastructure/auth"
	"github.com/tasknest/tasknest/internal/infrastructure/config"
	"github.com/tasknest/tasknest/internal/infrastructure/database"
	"github.com/tasknest/tasknest/internal/infrastructure/repository"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

const purgeTimeout = 5 * time.Minute

var (
	env      string
	once     bool
	interval time.Duration
)

func main() {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Purge expired sessions periodically",
		RunE:  run,
	}
	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single purge and exit")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Purge interval (default: session.purge_interval)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.WithComponent("worker")

	if interval <= 0 {
		interval = cfg.Session.PurgeInterval
	}
	log.Infow("starting session purge worker", "environment", env, "store", cfg.Session.Store, "interval", interval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeBackends, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackends()

	purge := func() {
		purgeCtx, cancel := context.WithTimeout(ctx, purgeTimeout)
		defer cancel()
		n, err := store.PurgeExpired(purgeCtx)
		if err != nil {
			log.Errorw("session purge failed", "error", err)
			return
		}
		log.Infow("session purge completed", "purged", n)
	}

	purge()
	if once {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			purge()
		case <-ctx.Done():
			log.Infow("session purge worker stopped")
			return nil
		}
	}
}

// openSessionStore connects only the backend the configured store needs.
func openSessionStore(ctx context.Context, cfg *config.Config, log logger.Interface) (*helpers.SessionStore, func(), error) {
	var backends repository.SessionBackends
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Session.Store {
	case config.SessionStoreGorm:
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		closers = append(closers, func() { _ = database.Close() })
		backends.DB = database.Get()
	case config.SessionStoreRedis:
		client, err := database.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		backends.Redis = client
	case config.SessionStoreMongo:
		client, mdb, err := database.OpenMongo(ctx, &cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		backends.Mongo = mdb
	}

	repo, err := repository.NewSessionRepositoryFor(ctx, cfg.Session.Store, backends, log)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	hasher := auth.NewBcryptTokenHasher(cfg.Auth.Session.TokenHashCost)
	return helpers.NewSessionStore(repo, hasher, log), closeAll, nil
}
