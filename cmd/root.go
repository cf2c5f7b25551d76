package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.2.0"
)

func showBanner() {
	banner := []string{
		"╔══════════════════════════════════════════╗",
		"║        🛒  shopseed data generator        ║",
		"║   synthetic marketplace data for Postgres ║",
		"╚══════════════════════════════════════════╝",
	}
	green := color.New(color.FgGreen, color.Bold)
	for _, line := range banner {
		green.Println(line)
	}
	fmt.Print("              ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "shopseed",
	Short: "Seed a PostgreSQL marketplace schema with synthetic data",
	Long: `
shopseed creates and tears down an e-commerce test schema (brands,
categories, sellers, products, promotions, orders, order items) and
fills it with coherent synthetic data.

Typical workflow:
  shopseed create    create all tables
  shopseed seed      populate reference data
  shopseed orders    generate a large volume of orders and items
  shopseed status    show row counts per table
  shopseed drop      drop everything`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("shopseed version %s\n", Version)
			return
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./shopseed.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("shopseed.config")
	}

	viper.AutomaticEnv()

	// Missing config file is fine, defaults cover everything.
	viper.ReadInConfig()
}
