package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status is an order lifecycle state. The generator only emits the three
// states of the sampled distribution; the schema allows more.
type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// StatusWeight is one row of the enumerated weight table used for the
// cumulative-weight status draw.
type StatusWeight struct {
	Status Status
	Weight int
}

// DefaultStatusWeights is 80% delivered, 10% cancelled, 10% placed.
var DefaultStatusWeights = []StatusWeight{
	{StatusDelivered, 8},
	{StatusCancelled, 1},
	{StatusPlaced, 1},
}

// Product is one entry of a seller's catalog as the generator reads it.
type Product struct {
	ID            int64
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
}

// Order is a pending order row. The id is assigned by the store on
// insert.
type Order struct {
	Date     time.Time
	SellerID int64
	Status   Status
	Total    decimal.Decimal
}

// Item is a pending order item row. OrderID stays zero until the parent
// order batch has been flushed and its ids paired back positionally.
type Item struct {
	OrderID   int64
	ProductID int64
	OrderDate time.Time
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Store is the storage boundary of the generator.
//
// InsertOrders must return the assigned ids positionally: ids[i] is the
// id of orders[i]. The pgx implementation guarantees this with one
// RETURNING statement per row inside a pipelined batch; a single
// multi-row RETURNING insert does not contractually order its result
// set.
type Store interface {
	SellerIDs(ctx context.Context) ([]int64, error)
	ProductsBySeller(ctx context.Context) (map[int64][]Product, error)
	InsertOrders(ctx context.Context, orders []Order) ([]int64, error)
	InsertItems(ctx context.Context, items []Item) error
}
