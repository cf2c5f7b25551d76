package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	Database Database `json:"database" mapstructure:"database"`
	Seed     Seed     `json:"seed" mapstructure:"seed"`
	Orders   Orders   `json:"orders" mapstructure:"orders"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	Name     string `json:"name" mapstructure:"name"`
	SSLMode  string `json:"sslmode" mapstructure:"sslmode"`
}

// Seed holds the row counts for the reference-data tables.
type Seed struct {
	Brands            int `json:"brands" mapstructure:"brands"`
	Categories        int `json:"categories" mapstructure:"categories"`
	Sellers           int `json:"sellers" mapstructure:"sellers"`
	Products          int `json:"products" mapstructure:"products"`
	Promotions        int `json:"promotions" mapstructure:"promotions"`
	PromotionProducts int `json:"promotion_products" mapstructure:"promotion_products"`
}

// Orders holds the bounds for the order generation run. Dates use the
// YYYY-MM-DD layout.
type Orders struct {
	MinOrders   int    `json:"min_orders" mapstructure:"min_orders"`
	MaxOrders   int    `json:"max_orders" mapstructure:"max_orders"`
	MinItems    int    `json:"min_items" mapstructure:"min_items"`
	MaxItems    int    `json:"max_items" mapstructure:"max_items"`
	MinQuantity int    `json:"min_quantity" mapstructure:"min_quantity"`
	MaxQuantity int    `json:"max_quantity" mapstructure:"max_quantity"`
	BatchSize   int    `json:"batch_size" mapstructure:"batch_size"`
	StartDate   string `json:"start_date" mapstructure:"start_date"`
	EndDate     string `json:"end_date" mapstructure:"end_date"`
}

const dateLayout = "2006-01-02"

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "shopseed"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Seed.Brands == 0 {
		cfg.Seed.Brands = 20
	}
	if cfg.Seed.Categories == 0 {
		cfg.Seed.Categories = 10
	}
	if cfg.Seed.Sellers == 0 {
		cfg.Seed.Sellers = 25
	}
	if cfg.Seed.Products == 0 {
		cfg.Seed.Products = 200
	}
	if cfg.Seed.Promotions == 0 {
		cfg.Seed.Promotions = 10
	}
	if cfg.Seed.PromotionProducts == 0 {
		cfg.Seed.PromotionProducts = 100
	}

	if cfg.Orders.MinOrders == 0 {
		cfg.Orders.MinOrders = 2_500_000
	}
	if cfg.Orders.MaxOrders == 0 {
		cfg.Orders.MaxOrders = 3_000_000
	}
	if cfg.Orders.MinItems == 0 {
		cfg.Orders.MinItems = 2
	}
	if cfg.Orders.MaxItems == 0 {
		cfg.Orders.MaxItems = 4
	}
	if cfg.Orders.MinQuantity == 0 {
		cfg.Orders.MinQuantity = 1
	}
	if cfg.Orders.MaxQuantity == 0 {
		cfg.Orders.MaxQuantity = 5
	}
	if cfg.Orders.BatchSize == 0 {
		cfg.Orders.BatchSize = 10_000
	}
	if cfg.Orders.StartDate == "" {
		cfg.Orders.StartDate = "2025-08-01"
	}
	if cfg.Orders.EndDate == "" {
		cfg.Orders.EndDate = "2025-10-31"
	}

	return &cfg, nil
}

// GetDatabaseURL returns the connection string. The URL environment
// variable wins; otherwise the URL is composed from the discrete fields.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	if c.Database.Password == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s and no password configured", c.Database.URLEnv)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	), nil
}

func (c *Config) Validate() error {
	switch c.Database.Provider {
	case "postgresql", "postgres":
	default:
		return fmt.Errorf("unsupported database provider: %s (only postgresql is supported)", c.Database.Provider)
	}

	o := c.Orders
	if o.MinOrders > o.MaxOrders {
		return fmt.Errorf("min_orders (%d) cannot exceed max_orders (%d)", o.MinOrders, o.MaxOrders)
	}
	if o.MinItems > o.MaxItems {
		return fmt.Errorf("min_items (%d) cannot exceed max_items (%d)", o.MinItems, o.MaxItems)
	}
	if o.MinQuantity > o.MaxQuantity {
		return fmt.Errorf("min_quantity (%d) cannot exceed max_quantity (%d)", o.MinQuantity, o.MaxQuantity)
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", o.BatchSize)
	}

	start, end, err := c.DateWindow()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", o.EndDate, o.StartDate)
	}

	return nil
}

// DateWindow parses the configured order date range.
func (c *Config) DateWindow() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, c.Orders.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.Orders.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.Orders.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", c.Orders.EndDate, err)
	}
	return start, end, nil
}
