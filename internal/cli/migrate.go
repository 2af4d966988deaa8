package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightloop/insightloop/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Migrate applies the SQL migrations from the migrations/ directory to the configured PostgreSQL database.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.CloseDB(db)

	return database.AutoMigrate(db, cfg, logger)
}
