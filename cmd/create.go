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

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create all tables",
	Long: `Create the marketplace schema (brand, category, seller, product,
promotions, promotion_products, orders, order_item).
All statements use CREATE TABLE IF NOT EXISTS, so re-running is safe.`,
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

		if err := schema.NewManager(pool).Create(ctx); err != nil {
			return err
		}

		color.Green("✅ All tables created successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
