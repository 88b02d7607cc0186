package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/interfaces/cli/migrate"
	"github.com/tasknest/tasknest/internal/interfaces/cli/server"
	"github.com/tasknest/tasknest/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tasknest",
		Short:   "TaskNest - todo lists with session-based auth",
		Long:    `TaskNest serves the todolist API and ships the database migration tooling.`,
		Version: version.Current,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
