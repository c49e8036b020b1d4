package analyzer

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Insights is the variant type of computed aggregates: one concrete shape
// per data category.
type Insights interface {
	DataType() Category
}

type ProductSales struct {
	Title    string
	Quantity int
}

type SalesInsights struct {
	TotalRevenue  decimal.Decimal
	TotalOrders   int
	AvgOrderValue decimal.Decimal
	TopProducts   []ProductSales
	TimePeriod    string
}

func (SalesInsights) DataType() Category { return CategorySales }

type InventoryInsights struct {
	TotalAvailable int
	TotalIncoming  int
	TotalCommitted int
	NetAvailable   int
	ProductCount   int
}

func (InventoryInsights) DataType() Category { return CategoryInventory }

type RepeatCustomer struct {
	FirstName   string
	LastName    string
	OrdersCount int
}

type CustomerInsights struct {
	TotalCustomers int
	// RepeatCount is the full number of customers with more than one order,
	// before RepeatCustomers is truncated to the top five.
	RepeatCount     int
	RepeatCustomers []RepeatCustomer
}

func (CustomerInsights) DataType() Category { return CategoryCustomers }

type OtherInsights struct {
	Message     string
	RecordCount int
}

func (OtherInsights) DataType() Category { return CategoryGeneral }

// Compute aggregates raw records into category-specific insights. It is a
// pure function: same input, same output, no side effects.
func Compute(category Category, records []Record, intent Intent) Insights {
	switch {
	case category == CategorySales && len(records) > 0:
		return computeSales(records, intent)
	case category == CategoryInventory && len(records) > 0:
		return computeInventory(records)
	case category == CategoryCustomers && len(records) > 0:
		return computeCustomers(records)
	default:
		return OtherInsights{
			Message:     "data retrieved but analysis needed",
			RecordCount: len(records),
		}
	}
}

func computeSales(records []Record, intent Intent) SalesInsights {
	totalRevenue := decimal.Zero
	quantities := make(map[string]int)
	var seen []string

	for _, rec := range records {
		totalRevenue = totalRevenue.Add(decimalField(rec, "total_price"))
		for _, item := range recordSlice(rec["line_items"]) {
			title := stringField(item, "title")
			if title == "" {
				title = "Unknown"
			}
			if _, ok := quantities[title]; !ok {
				seen = append(seen, title)
			}
			quantities[title] += intField(item, "quantity")
		}
	}

	totalOrders := len(records)
	avgOrderValue := decimal.Zero
	if totalOrders > 0 {
		avgOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(totalOrders)))
	}

	// Stable sort so ties keep first-encountered order.
	top := make([]ProductSales, 0, len(seen))
	for _, title := range seen {
		top = append(top, ProductSales{Title: title, Quantity: quantities[title]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > 5 {
		top = top[:5]
	}

	timePeriod := intent.TimePeriod
	if timePeriod == "" {
		timePeriod = "specified period"
	}

	return SalesInsights{
		TotalRevenue:  totalRevenue,
		TotalOrders:   totalOrders,
		AvgOrderValue: avgOrderValue,
		TopProducts:   top,
		TimePeriod:    timePeriod,
	}
}

func computeInventory(records []Record) InventoryInsights {
	var available, incoming, committed int
	for _, rec := range records {
		available += intField(rec, "available")
		incoming += intField(rec, "incoming")
		committed += intField(rec, "committed")
	}
	return InventoryInsights{
		TotalAvailable: available,
		TotalIncoming:  incoming,
		TotalCommitted: committed,
		NetAvailable:   available - committed + incoming,
		ProductCount:   len(records),
	}
}

func computeCustomers(records []Record) CustomerInsights {
	var repeat []RepeatCustomer
	for _, rec := range records {
		if count := intField(rec, "orders_count"); count > 1 {
			repeat = append(repeat, RepeatCustomer{
				FirstName:   stringField(rec, "first_name"),
				LastName:    stringField(rec, "last_name"),
				OrdersCount: count,
			})
		}
	}
	sort.SliceStable(repeat, func(i, j int) bool { return repeat[i].OrdersCount > repeat[j].OrdersCount })

	repeatCount := len(repeat)
	if len(repeat) > 5 {
		repeat = repeat[:5]
	}

	return CustomerInsights{
		TotalCustomers:  len(records),
		RepeatCount:     repeatCount,
		RepeatCustomers: repeat,
	}
}

// recordSlice normalizes a line-item field into records, whether it came
// from a JSON decode ([]any of map[string]any) or from fixture literals.
func recordSlice(v any) []Record {
	switch items := v.(type) {
	case []Record:
		return items
	case []any:
		out := make([]Record, 0, len(items))
		for _, item := range items {
			switch m := item.(type) {
			case Record:
				out = append(out, m)
			case map[string]any:
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}

func stringField(rec Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

// intField reads a numeric field that may arrive as a JSON number or a
// numeric string.
func intField(rec Record, key string) int {
	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// decimalField reads a money field. Storefront APIs serialize prices as
// decimal strings ("125.50"), so decimal arithmetic avoids float drift.
func decimalField(rec Record, key string) decimal.Decimal {
	switch v := rec[key].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	}
	return decimal.Zero
}
