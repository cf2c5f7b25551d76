package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/config"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/db"
	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/schema"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop all tables",
	Long: `Drop every table of the marketplace schema, dependents first,
with CASCADE.

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
		if !force && !confirm("Drop all tables and data?") {
			color.Yellow("❌ Drop cancelled")
			return nil
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		if err := schema.NewManager(pool).Drop(ctx); err != nil {
			return err
		}

		color.Green("✅ All tables dropped successfully")
		return nil
	},
}

func confirm(message string) bool {
	fmt.Printf("🤔 %s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

func init() {
	rootCmd.AddCommand(dropCmd)
}
