package orders

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// itemInsertChunk bounds the rows per multi-row INSERT so the statement
// stays well under the 65535 bind-parameter limit (6 params per row).
const itemInsertChunk = 1000

// PGStore is the PostgreSQL implementation of Store.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) SellerIDs(ctx context.Context) ([]int64, error) {
	query, _, err := sq.Select("seller_id").From("seller").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ProductsBySeller loads every product grouped by its owning seller.
// Decimal columns come back as text so the values stay exact.
func (s *PGStore) ProductsBySeller(ctx context.Context) (map[int64][]Product, error) {
	query, _, err := sq.
		Select("seller_id", "product_id", "price::text", "discount_price::text").
		From("product").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalogs := make(map[int64][]Product)
	for rows.Next() {
		var (
			sellerID  int64
			productID int64
			price     string
			discount  *string
		)
		if err := rows.Scan(&sellerID, &productID, &price, &discount); err != nil {
			return nil, err
		}

		p := Product{ID: productID}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid price for product %d: %w", productID, err)
		}
		if discount != nil {
			d, err := decimal.NewFromString(*discount)
			if err != nil {
				return nil, fmt.Errorf("invalid discount price for product %d: %w", productID, err)
			}
			p.DiscountPrice = &d
		}

		catalogs[sellerID] = append(catalogs[sellerID], p)
	}
	return catalogs, rows.Err()
}

// InsertOrders bulk-inserts the batch and returns the assigned ids in
// submission order. Each row is its own RETURNING statement queued in a
// single pipelined batch; results come back strictly in queue order, so
// ids[i] always belongs to orders[i].
func (s *PGStore) InsertOrders(ctx context.Context, batch []Order) ([]int64, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	b := &pgx.Batch{}
	for _, o := range batch {
		b.Queue(
			`INSERT INTO orders (order_date, seller_id, status, total_amount)
			 VALUES ($1, $2, $3, $4) RETURNING order_id`,
			o.Date, o.SellerID, string(o.Status), o.Total.StringFixed(2),
		)
	}

	results := s.db.SendBatch(ctx, b)
	defer results.Close()

	ids := make([]int64, 0, len(batch))
	for range batch {
		var id int64
		if err := results.QueryRow().Scan(&id); err != nil {
			return nil, fmt.Errorf("order insert: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// InsertItems bulk-inserts item rows in chunked multi-row statements.
// Nothing reads these ids, so no RETURNING is needed.
func (s *PGStore) InsertItems(ctx context.Context, items []Item) error {
	for start := 0; start < len(items); start += itemInsertChunk {
		end := start + itemInsertChunk
		if end > len(items) {
			end = len(items)
		}

		b := sq.Insert("order_item").Columns(
			"order_id", "product_id", "order_date", "quantity", "unit_price", "subtotal",
		)
		for _, item := range items[start:end] {
			b = b.Values(
				item.OrderID,
				item.ProductID,
				item.OrderDate,
				item.Quantity,
				item.UnitPrice.StringFixed(2),
				item.Subtotal.StringFixed(2),
			)
		}

		query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("order item insert: %w", err)
		}
	}
	return nil
}
