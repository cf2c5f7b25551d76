package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/config"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/db"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/orders"
)

var (
	ordersMin   int
	ordersMax   int
	ordersBatch int
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Generate orders and order items",
	Long: `Generate a large volume of random orders with 2-4 line items each,
referencing the seeded sellers and products. Orders are written in
batches; their assigned ids are paired back to the buffered items
before the items are flushed. Run 'seed' first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if ordersMin > 0 {
			cfg.Orders.MinOrders = ordersMin
		}
		if ordersMax > 0 {
			cfg.Orders.MaxOrders = ordersMax
		}
		if ordersBatch > 0 {
			cfg.Orders.BatchSize = ordersBatch
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		start, end, err := cfg.DateWindow()
		if err != nil {
			return err
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		gen := orders.New(orders.NewPGStore(pool), orders.Config{
			MinOrders:     cfg.Orders.MinOrders,
			MaxOrders:     cfg.Orders.MaxOrders,
			MinItems:      cfg.Orders.MinItems,
			MaxItems:      cfg.Orders.MaxItems,
			MinQuantity:   cfg.Orders.MinQuantity,
			MaxQuantity:   cfg.Orders.MaxQuantity,
			BatchSize:     cfg.Orders.BatchSize,
			StartDate:     start,
			EndDate:       end,
			StatusWeights: orders.DefaultStatusWeights,
		})

		summary, err := gen.Run(ctx)
		if err != nil {
			return err
		}

		color.Cyan("📊 Run summary: %d orders, %d skipped, ~%d items", summary.Orders, summary.Skipped, summary.EstimatedItems)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.Flags().IntVar(&ordersMin, "min", 0, "Minimum order count (overrides config)")
	ordersCmd.Flags().IntVar(&ordersMax, "max", 0, "Maximum order count (overrides config)")
	ordersCmd.Flags().IntVar(&ordersBatch, "batch", 0, "Order batch size (overrides config)")
}
