package seeder

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testGenerator(seed int64) *DataGenerator {
	return &DataGenerator{rand: rand.New(rand.NewSource(seed))}
}

func TestCompanyName(t *testing.T) {
	g := testGenerator(1)
	for i := 0; i < 20; i++ {
		name := g.CompanyName()
		if len(strings.Fields(name)) != 2 {
			t.Errorf("Expected two-word company name, got %q", name)
		}
	}
}

func TestPriceBetween(t *testing.T) {
	g := testGenerator(2)
	min := decimal.NewFromInt(5)
	max := decimal.NewFromInt(2000)

	for i := 0; i < 1000; i++ {
		price := g.PriceBetween(5, 2000)
		if price.LessThan(min) || price.GreaterThan(max) {
			t.Fatalf("Price %s outside [5, 2000]", price)
		}
		if price.Exponent() < -2 {
			t.Fatalf("Price %s has more than 2 decimal places", price)
		}
	}
}

func TestDiscountFor(t *testing.T) {
	g := testGenerator(3)
	price := decimal.RequireFromString("100.00")
	allowed := []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("5"),
		decimal.RequireFromString("10"),
		decimal.RequireFromString("15"),
	}

	discounted := 0
	trials := 10000
	for i := 0; i < trials; i++ {
		d := g.DiscountFor(price)
		if d == nil {
			continue
		}
		discounted++
		ok := false
		for _, want := range allowed {
			if d.Equal(want) {
				ok = true
				break
			}
		}
		if !ok {
			t.Fatalf("Discount %s is not 0/5/10/15%% of %s", d, price)
		}
	}

	frac := float64(discounted) / float64(trials)
	if frac < 0.36 || frac > 0.44 {
		t.Errorf("Discount fraction %.3f outside [0.36, 0.44]", frac)
	}
}

func TestRatingBetween(t *testing.T) {
	g := testGenerator(4)
	for i := 0; i < 1000; i++ {
		r := g.RatingBetween(3.0, 5.0)
		if r.LessThan(decimal.NewFromInt(3)) || r.GreaterThan(decimal.NewFromInt(5)) {
			t.Fatalf("Rating %s outside [3, 5]", r)
		}
		if r.Exponent() < -1 {
			t.Fatalf("Rating %s has more than 1 decimal place", r)
		}
	}
}

func TestDateWithin(t *testing.T) {
	g := testGenerator(5)
	now := time.Now()
	earliest := now.AddDate(0, 0, -(3*365 + 1))

	for i := 0; i < 100; i++ {
		d := g.DateWithin(3 * 365)
		if d.After(now) {
			t.Fatalf("Date %v is in the future", d)
		}
		if d.Before(earliest) {
			t.Fatalf("Date %v is more than 3 years back", d)
		}
		if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
			t.Fatalf("Date %v is not truncated to midnight", d)
		}
	}
}

func TestIntBetween(t *testing.T) {
	g := testGenerator(6)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := g.IntBetween(7, 90)
		if n < 7 || n > 90 {
			t.Fatalf("Value %d outside [7, 90]", n)
		}
		seen[n] = true
	}
	if len(seen) < 20 {
		t.Errorf("Expected a spread of values, saw only %d distinct", len(seen))
	}
}
