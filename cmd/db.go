package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytscout/ytscout/internal/config"
	"github.com/ytscout/ytscout/internal/migrations"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

// dbMigrateCmd applies pending schema migrations
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		if err := migrations.Run(cfg.DatabaseURL); err != nil {
			return err
		}
		fmt.Println("Database is up to date.")
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	rootCmd.AddCommand(dbCmd)
}
