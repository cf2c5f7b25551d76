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

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the schema",
	Long: `Reset the database by dropping all tables and recreating them
empty. Equivalent to 'drop' followed by 'create'.

⚠️  WARNING: This permanently deletes all data. Use --force to skip the
confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm("Reset the database? All data will be lost") {
			color.Yellow("❌ Reset cancelled")
			return nil
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		m := schema.NewManager(pool)
		if err := m.Drop(ctx); err != nil {
			return err
		}
		if err := m.Create(ctx); err != nil {
			return err
		}

		color.Green("✅ Schema reset, all tables recreated empty")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
