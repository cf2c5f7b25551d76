package schema

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables lists every table this tool owns, in creation order (referenced
// tables before their dependents).
var Tables = []string{
	"brand",
	"category",
	"seller",
	"product",
	"promotions",
	"promotion_products",
	"orders",
	"order_item",
}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS brand (
		brand_id SERIAL PRIMARY KEY,
		brand_name VARCHAR(100) NOT NULL,
		country VARCHAR(50) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS category (
		category_id SERIAL PRIMARY KEY,
		category_name VARCHAR(100) NOT NULL,
		parent_category_id INTEGER,
		level SMALLINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS seller (
		seller_id SERIAL PRIMARY KEY,
		seller_name VARCHAR(150) NOT NULL,
		join_date DATE NOT NULL,
		seller_type VARCHAR(50),
		rating DECIMAL(2,1),
		country VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product (
		product_id SERIAL PRIMARY KEY,
		product_name VARCHAR(200) NOT NULL,
		category_id INT NOT NULL,
		brand_id INT NOT NULL,
		seller_id INT NOT NULL,
		price DECIMAL(12,2) NOT NULL,
		discount_price DECIMAL(12,2),
		stock_qty INT NOT NULL CHECK (stock_qty >= 0),
		rating FLOAT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,

		FOREIGN KEY (category_id) REFERENCES category(category_id) ON DELETE SET NULL ON UPDATE CASCADE,
		FOREIGN KEY (brand_id) REFERENCES brand(brand_id) ON DELETE SET NULL ON UPDATE CASCADE,
		FOREIGN KEY (seller_id) REFERENCES seller(seller_id) ON DELETE SET NULL ON UPDATE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		promotion_id SERIAL PRIMARY KEY,
		promotion_name VARCHAR(100) NOT NULL,
		promotion_type VARCHAR(50) NOT NULL,
		discount_type VARCHAR(20) NOT NULL,
		discount_value NUMERIC(10,2),
		start_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		end_date TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS promotion_products (
		promo_product_id SERIAL PRIMARY KEY,
		promotion_id INT NOT NULL,
		product_id INT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,

		FOREIGN KEY (promotion_id) REFERENCES promotions(promotion_id),
		FOREIGN KEY (product_id) REFERENCES product(product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id SERIAL PRIMARY KEY,
		order_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		seller_id INT NOT NULL,
		status VARCHAR(20) NOT NULL CHECK (status IN ('PLACED', 'PAID', 'SHIPPED', 'DELIVERED', 'CANCELLED', 'RETURNED')),
		total_amount DECIMAL(12,2) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,

		FOREIGN KEY (seller_id) REFERENCES seller(seller_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_item (
		order_item_id BIGSERIAL PRIMARY KEY,
		order_id INT NOT NULL,
		product_id INT NOT NULL,
		order_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		quantity INTEGER NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL,
		subtotal NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,

		FOREIGN KEY (order_id) REFERENCES orders(order_id),
		FOREIGN KEY (product_id) REFERENCES product(product_id)
	)`,
}

// dropOrder lists tables dependents-first. CASCADE covers anything the
// ordering misses.
var dropOrder = []string{
	"order_item",
	"promotion_products",
	"orders",
	"product",
	"promotions",
	"seller",
	"category",
	"brand",
}

// Manager creates and drops the fixed marketplace schema.
type Manager struct {
	db *pgxpool.Pool
}

func NewManager(db *pgxpool.Pool) *Manager {
	return &Manager{db: db}
}

// Create issues the CREATE TABLE IF NOT EXISTS statements in dependency
// order. The first DDL error aborts the whole operation.
func (m *Manager) Create(ctx context.Context) error {
	for i, stmt := range createStatements {
		if _, err := m.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", Tables[i], err)
		}
	}
	return nil
}

// Drop removes all tables, dependents first, with CASCADE.
func (m *Manager) Drop(ctx context.Context) error {
	for _, table := range dropOrder {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
		if _, err := m.db.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// Counts returns the row count per table, in Tables order.
func (m *Manager) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		query, _, err := sq.Select("COUNT(*)").From(table).ToSql()
		if err != nil {
			return nil, err
		}
		var n int64
		if err := m.db.QueryRow(ctx, query).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
