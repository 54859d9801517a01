// filepath: internal/cli/migrate.go
package cli

import (
	"voicejournal/internal/logging"
	"voicejournal/internal/repository"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the journal database schema",
	Long:  `Applies, rolls back or lists schema migrations. These commands run without the startup schema check.`,
}

// withRepository opens the database without bootstrapping or validating the schema.
func withRepository(fn func(repo *repository.Repository) error) error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(repo)
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			if err := repo.MigrateUp(); err != nil {
				return err
			}
			logging.Log.Info("Database migrated to the latest version.")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			if err := repo.MigrateDown(); err != nil {
				return err
			}
			logging.Log.Info("Rolled back one migration.")
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			return repo.MigrateStatus()
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	RootCmd.AddCommand(migrateCmd)
}
