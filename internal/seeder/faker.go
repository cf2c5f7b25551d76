package seeder

import (
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var companyWords = []string{
	"Saigon", "Mekong", "Lotus", "Dragon", "Pacific", "Golden", "Sunrise",
	"Harbor", "Summit", "Evergreen", "Northwind", "Silverline", "Bluewave",
	"Redstone", "Starlight", "Greenfield", "Riverside", "Highland", "Crystal",
	"Phoenix", "Orient", "Horizon", "Pioneer", "Unity", "Prime",
}

var companySuffixes = []string{
	"Trading", "Retail", "Commerce", "Distribution", "Supply", "Goods",
	"Mart", "Store", "Group", "Co", "Ventures", "Logistics",
}

var countries = []string{
	"Vietnam", "Thailand", "Singapore", "Japan", "South Korea", "China",
	"United States", "Germany", "France", "Italy", "United Kingdom",
	"Australia", "Canada", "Brazil", "India", "Indonesia", "Malaysia",
	"Netherlands", "Spain", "Sweden",
}

var productWords = []string{
	"wireless", "portable", "premium", "classic", "compact", "smart",
	"ergonomic", "durable", "lightweight", "digital", "vintage", "modern",
	"bamboo", "ceramic", "leather", "cotton", "steel", "carbon", "solar",
	"kitchen", "travel", "office", "outdoor", "gaming", "fitness",
	"speaker", "lamp", "bottle", "backpack", "keyboard", "charger",
	"blender", "kettle", "monitor", "headset", "camera", "tripod",
	"notebook", "organizer", "sandal", "jacket", "watch", "mirror",
}

var categoryWords = []string{
	"electronics", "fashion", "home", "kitchen", "beauty", "sports",
	"books", "toys", "garden", "automotive", "grocery", "health",
	"furniture", "stationery", "pets", "baby", "music", "outdoors",
}

var catchPhrases = []string{
	"Mega Season Sale", "Flash Deal Frenzy", "Weekend Warehouse Clearance",
	"Back To School Bonanza", "Golden Hour Discount", "Midnight Madness",
	"Double Day Special", "Holiday Super Savers", "New Arrival Kickoff",
	"Loyal Customer Rewards", "Free Shipping Festival", "End Of Season Blowout",
}

// DataGenerator produces the random reference data values. Not safe for
// concurrent use; the seeder is single-threaded.
type DataGenerator struct {
	rand *rand.Rand
}

func NewDataGenerator() *DataGenerator {
	return &DataGenerator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rand.Intn(len(pool))]
}

func (g *DataGenerator) CompanyName() string {
	return g.pick(companyWords) + " " + g.pick(companySuffixes)
}

func (g *DataGenerator) Country() string {
	return g.pick(countries)
}

func (g *DataGenerator) CategoryName() string {
	word := g.pick(categoryWords)
	return strings.ToUpper(word[:1]) + word[1:]
}

func (g *DataGenerator) ProductName() string {
	words := make([]string, 3)
	for i := range words {
		words[i] = g.pick(productWords)
	}
	name := strings.Join(words, " ")
	return strings.ToUpper(name[:1]) + name[1:]
}

func (g *DataGenerator) CatchPhrase() string {
	return g.pick(catchPhrases)
}

// PriceBetween returns a uniform price in [min, max) rounded to cents.
func (g *DataGenerator) PriceBetween(min, max float64) decimal.Decimal {
	v := min + g.rand.Float64()*(max-min)
	return decimal.NewFromFloat(v).Round(2)
}

// DiscountFor returns a discount price for the given base price with 40%
// probability, at 0, 5, 10 or 15 percent of the price; nil otherwise.
func (g *DataGenerator) DiscountFor(price decimal.Decimal) *decimal.Decimal {
	if g.rand.Float64() >= 0.4 {
		return nil
	}
	rates := []string{"0", "0.05", "0.1", "0.15"}
	rate := decimal.RequireFromString(rates[g.rand.Intn(len(rates))])
	d := price.Mul(rate).Round(2)
	return &d
}

// RatingBetween returns a rating in [min, max) rounded to one decimal.
func (g *DataGenerator) RatingBetween(min, max float64) decimal.Decimal {
	v := min + g.rand.Float64()*(max-min)
	return decimal.NewFromFloat(v).Round(1)
}

// DateWithin returns a date up to daysBack days before now, truncated to
// midnight UTC.
func (g *DataGenerator) DateWithin(daysBack int) time.Time {
	offset := time.Duration(g.rand.Intn(daysBack*24)) * time.Hour
	t := time.Now().Add(-offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (g *DataGenerator) IntBetween(min, max int) int {
	return min + g.rand.Intn(max-min+1)
}
