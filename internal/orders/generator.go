package orders

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// itemBatchFactor scales the item flush threshold relative to the order
// batch size, since each order expands into several items.
const itemBatchFactor = 3

// Config is the immutable configuration of one generation run.
type Config struct {
	MinOrders   int
	MaxOrders   int
	MinItems    int
	MaxItems    int
	MinQuantity int
	MaxQuantity int
	BatchSize   int
	StartDate   time.Time
	EndDate     time.Time
	// StatusWeights is the enumerated weight table for the status draw.
	StatusWeights []StatusWeight
}

// Summary reports the outcome of a run. EstimatedItems is an
// approximation (average items per order times generated orders), not an
// exact count.
type Summary struct {
	Orders         int
	Skipped        int
	EstimatedItems int
}

// Generator synthesizes orders and order items against existing sellers
// and products, flushing both in batches through the Store.
type Generator struct {
	store Store
	cfg   Config
	rand  *rand.Rand
}

func New(store Store, cfg Config) *Generator {
	return &Generator{
		store: store,
		cfg:   cfg,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run generates the whole order volume. Already committed batches stay
// persisted when a later batch fails; the run is reported, not retried.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	sellers, err := g.store.SellerIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch sellers: %w", err)
	}
	if len(sellers) == 0 {
		return summary, fmt.Errorf("no sellers found, populate the seller table first")
	}

	catalogs, err := g.store.ProductsBySeller(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch products: %w", err)
	}
	if len(catalogs) == 0 {
		return summary, fmt.Errorf("no products found, populate the product table first")
	}

	total := g.between(g.cfg.MinOrders, g.cfg.MaxOrders)
	color.Cyan("📦 Generating %d orders...", total)

	var (
		pendingOrders []Order
		pendingItems  [][]Item // parallel to pendingOrders
		itemBuf       []Item
	)
	itemThreshold := g.cfg.BatchSize * itemBatchFactor

	flushOrders := func() error {
		if len(pendingOrders) == 0 {
			return nil
		}
		ids, err := g.store.InsertOrders(ctx, pendingOrders)
		if err != nil {
			return fmt.Errorf("failed to insert order batch: %w", err)
		}
		if len(ids) != len(pendingOrders) {
			return fmt.Errorf("order batch returned %d ids for %d rows", len(ids), len(pendingOrders))
		}
		for i, id := range ids {
			for _, item := range pendingItems[i] {
				item.OrderID = id
				itemBuf = append(itemBuf, item)
			}
		}
		pendingOrders = pendingOrders[:0]
		pendingItems = pendingItems[:0]
		return nil
	}

	flushItems := func() error {
		if len(itemBuf) == 0 {
			return nil
		}
		if err := g.store.InsertItems(ctx, itemBuf); err != nil {
			return fmt.Errorf("failed to insert item batch: %w", err)
		}
		itemBuf = itemBuf[:0]
		return nil
	}

	for n := 0; n < total; n++ {
		sellerID := sellers[g.rand.Intn(len(sellers))]
		catalog := catalogs[sellerID]
		if len(catalog) < g.cfg.MinItems {
			// Not enough products for a valid order; the shortfall is
			// counted but the sampled total is not topped up.
			summary.Skipped++
			continue
		}

		orderDate := g.randomDate()
		status := g.pickStatus()

		count := g.between(g.cfg.MinItems, g.cfg.MaxItems)
		if count > len(catalog) {
			count = len(catalog)
		}

		totalAmount := decimal.Zero
		items := make([]Item, 0, count)
		for _, p := range g.sample(catalog, count) {
			quantity := g.between(g.cfg.MinQuantity, g.cfg.MaxQuantity)
			unitPrice := p.Price
			if p.DiscountPrice != nil {
				unitPrice = *p.DiscountPrice
			}
			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
			totalAmount = totalAmount.Add(subtotal)
			items = append(items, Item{
				ProductID: p.ID,
				OrderDate: orderDate,
				Quantity:  quantity,
				UnitPrice: unitPrice,
				Subtotal:  subtotal,
			})
		}

		pendingOrders = append(pendingOrders, Order{
			Date:     orderDate,
			SellerID: sellerID,
			Status:   status,
			Total:    totalAmount,
		})
		pendingItems = append(pendingItems, items)
		summary.Orders++

		if len(pendingOrders) >= g.cfg.BatchSize {
			if err := flushOrders(); err != nil {
				return summary, err
			}
			if len(itemBuf) >= itemThreshold {
				if err := flushItems(); err != nil {
					return summary, err
				}
			}
		}
	}

	if err := flushOrders(); err != nil {
		return summary, err
	}
	if err := flushItems(); err != nil {
		return summary, err
	}

	summary.EstimatedItems = summary.Orders * (g.cfg.MinItems + g.cfg.MaxItems) / 2
	if summary.Skipped > 0 {
		color.Yellow("⚠️  Skipped %d orders for sellers with fewer than %d products", summary.Skipped, g.cfg.MinItems)
	}
	color.Green("✅ Generated %d orders (~%d items)", summary.Orders, summary.EstimatedItems)
	return summary, nil
}

func (g *Generator) between(min, max int) int {
	return min + g.rand.Intn(max-min+1)
}

// randomDate is uniform over the seconds of the configured window,
// inclusive of both endpoints.
func (g *Generator) randomDate() time.Time {
	span := int(g.cfg.EndDate.Sub(g.cfg.StartDate) / time.Second)
	return g.cfg.StartDate.Add(time.Duration(g.rand.Intn(span+1)) * time.Second)
}

// pickStatus samples the weighted status table with a cumulative-weight
// draw.
func (g *Generator) pickStatus() Status {
	totalWeight := 0
	for _, w := range g.cfg.StatusWeights {
		totalWeight += w.Weight
	}
	draw := g.rand.Intn(totalWeight)
	for _, w := range g.cfg.StatusWeights {
		draw -= w.Weight
		if draw < 0 {
			return w.Status
		}
	}
	return g.cfg.StatusWeights[len(g.cfg.StatusWeights)-1].Status
}

// sample picks n distinct products via a partial Fisher-Yates shuffle
// over the catalog indexes.
func (g *Generator) sample(catalog []Product, n int) []Product {
	idx := make([]int, len(catalog))
	for i := range idx {
		idx[i] = i
	}

	picks := make([]Product, n)
	for i := 0; i < n; i++ {
		j := i + g.rand.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		picks[i] = catalog[idx[i]]
	}
	return picks
}
