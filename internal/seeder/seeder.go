package seeder

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/baonguyen-lq/ecommerce-faker-data-generator/internal/config"
)

var sellerTypes = []string{"marketplace", "direct"}
var promotionTypes = []string{"sitewide", "category", "brand"}
var discountTypes = []string{"percent", "fixed"}

// Seeder populates the reference-data tables (everything the order
// generator reads). Each entity batch is inserted with RETURNING so the
// assigned ids can feed the dependent entities.
type Seeder struct {
	db     *pgxpool.Pool
	gen    *DataGenerator
	counts config.Seed
	ids    map[string][]int64
}

func New(db *pgxpool.Pool, counts config.Seed) *Seeder {
	return &Seeder{
		db:     db,
		gen:    NewDataGenerator(),
		counts: counts,
		ids:    make(map[string][]int64),
	}
}

// Run seeds all reference tables in dependency order. Any error aborts
// the whole operation; there is no partial cleanup.
func (s *Seeder) Run(ctx context.Context) error {
	color.Cyan("🌱 Seeding reference data...")

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"brand", s.seedBrands},
		{"category", s.seedCategories},
		{"seller", s.seedSellers},
		{"product", s.seedProducts},
		{"promotions", s.seedPromotions},
		{"promotion_products", s.seedPromotionProducts},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
	}

	color.Green("✅ Reference data seeding completed")
	return nil
}

func (s *Seeder) seedBrands(ctx context.Context) error {
	b := sq.Insert("brand").Columns("brand_name", "country")
	for i := 0; i < s.counts.Brands; i++ {
		b = b.Values(s.gen.CompanyName(), s.gen.Country())
	}

	ids, err := s.insertReturningIDs(ctx, b, "brand_id")
	if err != nil {
		return err
	}
	s.ids["brand"] = ids

	color.Green("  ✅ brand: %d rows", len(ids))
	return nil
}

// seedCategories builds a two-level tree: level-1 roots go in first,
// then ~40% of the remaining entries become level-2 children of a
// random root.
func (s *Seeder) seedCategories(ctx context.Context) error {
	var roots, children int
	for i := 0; i < s.counts.Categories; i++ {
		if i > 0 && s.gen.rand.Float64() < 0.4 {
			children++
		} else {
			roots++
		}
	}

	rb := sq.Insert("category").Columns("category_name", "parent_category_id", "level")
	for i := 0; i < roots; i++ {
		rb = rb.Values(s.gen.CategoryName(), nil, 1)
	}
	rootIDs, err := s.insertReturningIDs(ctx, rb, "category_id")
	if err != nil {
		return err
	}
	s.ids["category"] = rootIDs

	if children > 0 {
		cb := sq.Insert("category").Columns("category_name", "parent_category_id", "level")
		for i := 0; i < children; i++ {
			parent := rootIDs[s.gen.rand.Intn(len(rootIDs))]
			cb = cb.Values(s.gen.CategoryName(), parent, 2)
		}
		childIDs, err := s.insertReturningIDs(ctx, cb, "category_id")
		if err != nil {
			return err
		}
		s.ids["category"] = append(s.ids["category"], childIDs...)
	}

	color.Green("  ✅ category: %d rows (%d roots, %d children)", roots+children, roots, children)
	return nil
}

func (s *Seeder) seedSellers(ctx context.Context) error {
	b := sq.Insert("seller").Columns("seller_name", "join_date", "seller_type", "rating", "country")
	for i := 0; i < s.counts.Sellers; i++ {
		b = b.Values(
			s.gen.CompanyName(),
			s.gen.DateWithin(3*365),
			s.gen.pick(sellerTypes),
			s.gen.RatingBetween(3.0, 5.0).String(),
			"Vietnam",
		)
	}

	ids, err := s.insertReturningIDs(ctx, b, "seller_id")
	if err != nil {
		return err
	}
	s.ids["seller"] = ids

	color.Green("  ✅ seller: %d rows", len(ids))
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	b := sq.Insert("product").Columns(
		"product_name", "category_id", "brand_id", "seller_id",
		"price", "discount_price", "stock_qty", "rating",
	)
	for i := 0; i < s.counts.Products; i++ {
		price := s.gen.PriceBetween(5, 2000)
		b = b.Values(
			s.gen.ProductName(),
			s.randomID("category"),
			s.randomID("brand"),
			s.randomID("seller"),
			price.StringFixed(2),
			nullDecimal(s.gen.DiscountFor(price)),
			s.gen.IntBetween(0, 500),
			s.gen.RatingBetween(2.5, 5.0).InexactFloat64(),
		)
	}

	ids, err := s.insertReturningIDs(ctx, b, "product_id")
	if err != nil {
		return err
	}
	s.ids["product"] = ids

	color.Green("  ✅ product: %d rows", len(ids))
	return nil
}

func (s *Seeder) seedPromotions(ctx context.Context) error {
	now := time.Now()
	b := sq.Insert("promotions").Columns(
		"promotion_name", "promotion_type", "discount_type", "discount_value", "end_date",
	)
	for i := 0; i < s.counts.Promotions; i++ {
		end := now.AddDate(0, 0, s.gen.IntBetween(7, 90))
		b = b.Values(
			s.gen.CatchPhrase(),
			s.gen.pick(promotionTypes),
			s.gen.pick(discountTypes),
			s.gen.PriceBetween(5, 50).StringFixed(2),
			end,
		)
	}

	ids, err := s.insertReturningIDs(ctx, b, "promotion_id")
	if err != nil {
		return err
	}
	s.ids["promotions"] = ids

	color.Green("  ✅ promotions: %d rows", len(ids))
	return nil
}

func (s *Seeder) seedPromotionProducts(ctx context.Context) error {
	b := sq.Insert("promotion_products").Columns("promotion_id", "product_id")
	for i := 0; i < s.counts.PromotionProducts; i++ {
		b = b.Values(s.randomID("promotions"), s.randomID("product"))
	}

	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return err
	}

	color.Green("  ✅ promotion_products: %d rows", s.counts.PromotionProducts)
	return nil
}

// insertReturningIDs runs a multi-row insert and collects the assigned
// ids. These pools only feed random FK sampling, so their order does
// not matter.
func (s *Seeder) insertReturningIDs(ctx context.Context, b sq.InsertBuilder, idColumn string) ([]int64, error) {
	query, args, err := b.Suffix("RETURNING " + idColumn).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query, args...)
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

func (s *Seeder) randomID(table string) int64 {
	ids := s.ids[table]
	return ids[s.gen.rand.Intn(len(ids))]
}

func nullDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.StringFixed(2)
}
