package orders

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeStore struct {
	sellers  []int64
	catalogs map[int64][]Product

	nextID       int64
	orders       map[int64]Order
	items        []Item
	orderBatches []int
	itemBatches  []int

	failOrders bool
	failItems  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: make(map[int64]Order)}
}

func (f *fakeStore) SellerIDs(ctx context.Context) ([]int64, error) {
	return f.sellers, nil
}

func (f *fakeStore) ProductsBySeller(ctx context.Context) (map[int64][]Product, error) {
	return f.catalogs, nil
}

func (f *fakeStore) InsertOrders(ctx context.Context, batch []Order) ([]int64, error) {
	if f.failOrders {
		return nil, errors.New("order insert failed")
	}
	ids := make([]int64, 0, len(batch))
	for _, o := range batch {
		f.nextID++
		f.orders[f.nextID] = o
		ids = append(ids, f.nextID)
	}
	f.orderBatches = append(f.orderBatches, len(batch))
	return ids, nil
}

func (f *fakeStore) InsertItems(ctx context.Context, items []Item) error {
	if f.failItems {
		return errors.New("item insert failed")
	}
	f.items = append(f.items, items...)
	f.itemBatches = append(f.itemBatches, len(items))
	return nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	d := dec(t, s)
	return &d
}

var (
	windowStart = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
)

func testConfig(count int) Config {
	return Config{
		MinOrders:     count,
		MaxOrders:     count,
		MinItems:      2,
		MaxItems:      4,
		MinQuantity:   1,
		MaxQuantity:   5,
		BatchSize:     256,
		StartDate:     windowStart,
		EndDate:       windowEnd,
		StatusWeights: DefaultStatusWeights,
	}
}

func newTestGenerator(store Store, cfg Config, seed int64) *Generator {
	g := New(store, cfg)
	g.rand = rand.New(rand.NewSource(seed))
	return g
}

// marketplaceStore returns a store with 3 sellers: two with full
// catalogs (with and without discounts) and one right at the 2-item
// minimum.
func marketplaceStore(t *testing.T) *fakeStore {
	f := newFakeStore()
	f.sellers = []int64{1, 2, 3}
	f.catalogs = map[int64][]Product{
		1: {
			{ID: 101, Price: dec(t, "10.00")},
			{ID: 102, Price: dec(t, "25.50"), DiscountPrice: decPtr(t, "19.99")},
			{ID: 103, Price: dec(t, "99.90")},
			{ID: 104, Price: dec(t, "5.25"), DiscountPrice: decPtr(t, "0.00")},
			{ID: 105, Price: dec(t, "1234.56")},
		},
		2: {
			{ID: 201, Price: dec(t, "7.77")},
			{ID: 202, Price: dec(t, "42.00"), DiscountPrice: decPtr(t, "37.80")},
			{ID: 203, Price: dec(t, "300.01")},
		},
		3: {
			{ID: 301, Price: dec(t, "15.00")},
			{ID: 302, Price: dec(t, "16.00")},
		},
	}
	return f
}

func TestRunInvariants(t *testing.T) {
	store := marketplaceStore(t)
	g := newTestGenerator(store, testConfig(2000), 1)

	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Orders != 2000 {
		t.Errorf("Expected 2000 orders, got %d", summary.Orders)
	}
	if summary.Skipped != 0 {
		t.Errorf("Expected no skipped orders, got %d", summary.Skipped)
	}
	if summary.EstimatedItems != 2000*3 {
		t.Errorf("Expected estimated item count 6000, got %d", summary.EstimatedItems)
	}
	if len(store.orders) != 2000 {
		t.Fatalf("Expected 2000 persisted orders, got %d", len(store.orders))
	}

	ownerOf := make(map[int64]int64)
	productByID := make(map[int64]Product)
	for sellerID, catalog := range store.catalogs {
		for _, p := range catalog {
			ownerOf[p.ID] = sellerID
			productByID[p.ID] = p
		}
	}

	itemsByOrder := make(map[int64][]Item)
	for _, item := range store.items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	if len(itemsByOrder) != len(store.orders) {
		t.Fatalf("Items reference %d orders, expected %d", len(itemsByOrder), len(store.orders))
	}

	for orderID, order := range store.orders {
		items := itemsByOrder[orderID]
		if len(items) < 2 || len(items) > 4 {
			t.Fatalf("Order %d has %d items, expected 2-4", orderID, len(items))
		}

		if order.Date.Before(windowStart) || order.Date.After(windowEnd) {
			t.Errorf("Order %d date %v outside window", orderID, order.Date)
		}
		switch order.Status {
		case StatusPlaced, StatusDelivered, StatusCancelled:
		default:
			t.Errorf("Order %d has unexpected status %q", orderID, order.Status)
		}

		seen := make(map[int64]bool)
		total := decimal.Zero
		for _, item := range items {
			if seen[item.ProductID] {
				t.Errorf("Order %d references product %d twice", orderID, item.ProductID)
			}
			seen[item.ProductID] = true

			if ownerOf[item.ProductID] != order.SellerID {
				t.Errorf("Order %d (seller %d) has item from seller %d", orderID, order.SellerID, ownerOf[item.ProductID])
			}
			if !item.OrderDate.Equal(order.Date) {
				t.Errorf("Order %d item date %v != order date %v", orderID, item.OrderDate, order.Date)
			}
			if item.Quantity < 1 || item.Quantity > 5 {
				t.Errorf("Order %d item quantity %d outside [1,5]", orderID, item.Quantity)
			}

			p := productByID[item.ProductID]
			wantUnit := p.Price
			if p.DiscountPrice != nil {
				wantUnit = *p.DiscountPrice
			}
			if !item.UnitPrice.Equal(wantUnit) {
				t.Errorf("Order %d product %d unit price %s, want %s", orderID, item.ProductID, item.UnitPrice, wantUnit)
			}

			wantSubtotal := wantUnit.Mul(decimal.NewFromInt(int64(item.Quantity)))
			if !item.Subtotal.Equal(wantSubtotal) {
				t.Errorf("Order %d product %d subtotal %s, want %s", orderID, item.ProductID, item.Subtotal, wantSubtotal)
			}
			total = total.Add(item.Subtotal)
		}

		if !order.Total.Equal(total) {
			t.Errorf("Order %d total %s != item sum %s", orderID, order.Total, total)
		}
	}
}

func TestStatusDistribution(t *testing.T) {
	store := marketplaceStore(t)
	g := newTestGenerator(store, testConfig(10000), 7)

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	counts := make(map[Status]int)
	for _, order := range store.orders {
		counts[order.Status]++
	}

	n := float64(len(store.orders))
	checks := []struct {
		status   Status
		low, high float64
	}{
		{StatusDelivered, 0.77, 0.83},
		{StatusCancelled, 0.07, 0.13},
		{StatusPlaced, 0.07, 0.13},
	}
	for _, c := range checks {
		frac := float64(counts[c.status]) / n
		if frac < c.low || frac > c.high {
			t.Errorf("Status %s fraction %.3f outside [%.2f, %.2f]", c.status, frac, c.low, c.high)
		}
	}
}

func TestSingleSellerThreeProducts(t *testing.T) {
	store := newFakeStore()
	store.sellers = []int64{42}
	store.catalogs = map[int64][]Product{
		42: {
			{ID: 1, Price: dec(t, "10.00")},
			{ID: 2, Price: dec(t, "20.00")},
			{ID: 3, Price: dec(t, "30.00")},
		},
	}

	g := newTestGenerator(store, testConfig(1), 3)
	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Orders != 1 {
		t.Fatalf("Expected 1 order, got %d", summary.Orders)
	}

	order := store.orders[1]
	if order.SellerID != 42 {
		t.Errorf("Expected seller 42, got %d", order.SellerID)
	}
	if len(store.items) < 2 || len(store.items) > 3 {
		t.Fatalf("Expected 2-3 items (catalog size 3), got %d", len(store.items))
	}

	total := decimal.Zero
	for _, item := range store.items {
		if item.ProductID < 1 || item.ProductID > 3 {
			t.Errorf("Item references unknown product %d", item.ProductID)
		}
		total = total.Add(item.Subtotal)
	}
	if !order.Total.Equal(total) {
		t.Errorf("Order total %s != item sum %s", order.Total, total)
	}
}

func TestSkipsSellersBelowItemMinimum(t *testing.T) {
	store := newFakeStore()
	store.sellers = []int64{5}
	store.catalogs = map[int64][]Product{
		5: {{ID: 1, Price: dec(t, "10.00")}},
	}

	g := newTestGenerator(store, testConfig(50), 11)
	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected skips, not an error: %v", err)
	}
	if summary.Orders != 0 {
		t.Errorf("Expected 0 orders, got %d", summary.Orders)
	}
	if summary.Skipped != 50 {
		t.Errorf("Expected 50 skipped, got %d", summary.Skipped)
	}
	if len(store.orders) != 0 || len(store.items) != 0 {
		t.Errorf("Expected nothing persisted, got %d orders and %d items", len(store.orders), len(store.items))
	}
}

func TestBatchFlushing(t *testing.T) {
	store := marketplaceStore(t)
	cfg := testConfig(1000)
	cfg.BatchSize = 100
	g := newTestGenerator(store, cfg, 13)

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	totalOrders := 0
	for _, n := range store.orderBatches {
		if n == 0 {
			t.Error("Flushed an empty order batch")
		}
		if n > 100 {
			t.Errorf("Order batch of %d exceeds batch size 100", n)
		}
		totalOrders += n
	}
	if totalOrders != 1000 {
		t.Errorf("Order batches sum to %d, expected 1000", totalOrders)
	}

	totalItems := 0
	for _, n := range store.itemBatches {
		if n == 0 {
			t.Error("Flushed an empty item batch")
		}
		totalItems += n
	}
	if totalItems != len(store.items) {
		t.Errorf("Item batches sum to %d, expected %d", totalItems, len(store.items))
	}
	if len(store.itemBatches) < 2 {
		t.Errorf("Expected multiple item flushes for 1000 orders at batch size 100, got %d", len(store.itemBatches))
	}
}

func TestNoSellersFails(t *testing.T) {
	store := newFakeStore()
	store.catalogs = map[int64][]Product{}

	g := newTestGenerator(store, testConfig(10), 1)
	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("Expected an error with no sellers")
	}
}

func TestNoProductsFails(t *testing.T) {
	store := newFakeStore()
	store.sellers = []int64{1}
	store.catalogs = map[int64][]Product{}

	g := newTestGenerator(store, testConfig(10), 1)
	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("Expected an error with no products")
	}
}

func TestStorageErrorAbortsRun(t *testing.T) {
	store := marketplaceStore(t)
	store.failOrders = true

	g := newTestGenerator(store, testConfig(10), 1)
	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("Expected order insert failure to abort the run")
	}

	store = marketplaceStore(t)
	store.failItems = true
	g = newTestGenerator(store, testConfig(10), 1)
	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("Expected item insert failure to abort the run")
	}
}

func TestSampleDistinct(t *testing.T) {
	g := newTestGenerator(newFakeStore(), testConfig(1), 17)
	catalog := []Product{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	for trial := 0; trial < 100; trial++ {
		picks := g.sample(catalog, 4)
		seen := make(map[int64]bool)
		for _, p := range picks {
			if seen[p.ID] {
				t.Fatalf("Duplicate product %d in sample", p.ID)
			}
			seen[p.ID] = true
		}
	}
}

func TestRandomDateDegenerateWindow(t *testing.T) {
	cfg := testConfig(1)
	cfg.StartDate = windowStart
	cfg.EndDate = windowStart
	g := newTestGenerator(newFakeStore(), cfg, 19)

	if got := g.randomDate(); !got.Equal(windowStart) {
		t.Errorf("Expected %v for a single-instant window, got %v", windowStart, got)
	}
}
