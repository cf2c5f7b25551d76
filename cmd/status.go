package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/config"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/db"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/schema"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts per table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		counts, err := schema.NewManager(pool).Counts(ctx)
		if err != nil {
			return err
		}

		color.Cyan("📊 Table row counts:")
		for _, table := range schema.Tables {
			fmt.Printf("  %-20s %12d\n", table, counts[table])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
