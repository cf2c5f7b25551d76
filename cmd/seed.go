package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/config"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/db"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/seeder"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate reference data",
	Long: `Populate brands, categories, sellers, products, promotions and
promotion-product links with random data. This establishes the
foreign-key universe the 'orders' command depends on. Row counts are
configurable under the "seed" section of the config file.`,
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

		return seeder.New(pool, cfg.Seed).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
