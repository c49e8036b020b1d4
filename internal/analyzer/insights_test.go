package analyzer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesRecord(price string, items ...Record) Record {
	lineItems := make([]any, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, map[string]any(item))
	}
	return Record{"total_price": price, "line_items": lineItems}
}

func TestComputeSalesTotals(t *testing.T) {
	records := []Record{
		salesRecord("125.50", Record{"title": "Coffee Beans Premium", "quantity": 2}),
		salesRecord("89.99", Record{"title": "Artisan Tea Collection", "quantity": 1}),
		salesRecord("45.00", Record{"title": "Coffee Beans Premium", "quantity": 1}),
	}

	ins, ok := Compute(CategorySales, records, Intent{TimePeriod: "last week"}).(SalesInsights)
	require.True(t, ok)

	assert.Equal(t, "260.49", ins.TotalRevenue.StringFixed(2))
	assert.Equal(t, 3, ins.TotalOrders)
	assert.Equal(t, "last week", ins.TimePeriod)

	// avg_order_value == total_revenue / total_orders
	want := ins.TotalRevenue.Div(decimal.NewFromInt(int64(ins.TotalOrders)))
	assert.True(t, ins.AvgOrderValue.Equal(want))
}

func TestComputeSalesTopProductsOrdering(t *testing.T) {
	records := []Record{
		salesRecord("10.00",
			Record{"title": "A", "quantity": 1},
			Record{"title": "B", "quantity": 4},
			Record{"title": "C", "quantity": 2},
		),
		salesRecord("10.00",
			Record{"title": "D", "quantity": 2},
			Record{"title": "E", "quantity": 7},
			Record{"title": "F", "quantity": 1},
			Record{"title": "G", "quantity": 3},
		),
	}

	ins := Compute(CategorySales, records, Intent{}).(SalesInsights)

	assert.LessOrEqual(t, len(ins.TopProducts), 5)
	for i := 1; i < len(ins.TopProducts); i++ {
		assert.GreaterOrEqual(t, ins.TopProducts[i-1].Quantity, ins.TopProducts[i].Quantity)
	}
	// Ties keep first-encountered order: C (2) was seen before D (2).
	assert.Equal(t, []ProductSales{
		{Title: "E", Quantity: 7},
		{Title: "B", Quantity: 4},
		{Title: "G", Quantity: 3},
		{Title: "C", Quantity: 2},
		{Title: "D", Quantity: 2},
	}, ins.TopProducts)
}

func TestComputeSalesAggregatesQuantitiesAcrossOrders(t *testing.T) {
	records := []Record{
		salesRecord("10.00", Record{"title": "A", "quantity": 2}),
		salesRecord("10.00", Record{"title": "A", "quantity": 3}),
	}

	ins := Compute(CategorySales, records, Intent{}).(SalesInsights)
	require.Len(t, ins.TopProducts, 1)
	assert.Equal(t, 5, ins.TopProducts[0].Quantity)
	assert.Equal(t, "specified period", ins.TimePeriod)
}

func TestComputeInventoryNetAvailable(t *testing.T) {
	records := []Record{
		{"available": 45, "incoming": 50, "committed": 5},
		{"available": 23, "incoming": 0, "committed": 8},
	}

	ins, ok := Compute(CategoryInventory, records, Intent{}).(InventoryInsights)
	require.True(t, ok)

	assert.Equal(t, 68, ins.TotalAvailable)
	assert.Equal(t, 50, ins.TotalIncoming)
	assert.Equal(t, 13, ins.TotalCommitted)
	assert.Equal(t, ins.TotalAvailable-ins.TotalCommitted+ins.TotalIncoming, ins.NetAvailable)
	assert.Equal(t, 2, ins.ProductCount)
}

func TestComputeInventoryAllZero(t *testing.T) {
	records := []Record{
		{"available": 0, "incoming": 0, "committed": 0},
		{"available": 0, "incoming": 0, "committed": 0},
	}

	ins := Compute(CategoryInventory, records, Intent{}).(InventoryInsights)
	assert.Zero(t, ins.NetAvailable)
	assert.Equal(t, ins.TotalAvailable-ins.TotalCommitted+ins.TotalIncoming, ins.NetAvailable)
}

func TestComputeInventoryTolerantFieldTypes(t *testing.T) {
	// JSON decoding yields float64, fixtures yield int, some APIs send strings.
	records := []Record{
		{"available": float64(10), "incoming": "5", "committed": 2},
	}

	ins := Compute(CategoryInventory, records, Intent{}).(InventoryInsights)
	assert.Equal(t, 10, ins.TotalAvailable)
	assert.Equal(t, 5, ins.TotalIncoming)
	assert.Equal(t, 2, ins.TotalCommitted)
}

func TestComputeCustomersRepeatFiltering(t *testing.T) {
	records := []Record{
		{"first_name": "John", "last_name": "Doe", "orders_count": 3},
		{"first_name": "Mike", "last_name": "Johnson", "orders_count": 1},
		{"first_name": "Emily", "last_name": "Davis", "orders_count": 4},
		{"first_name": "Jane", "last_name": "Smith", "orders_count": 2},
		{"first_name": "Robert", "last_name": "Wilson", "orders_count": 2},
	}

	ins, ok := Compute(CategoryCustomers, records, Intent{}).(CustomerInsights)
	require.True(t, ok)

	assert.Equal(t, 5, ins.TotalCustomers)
	assert.Equal(t, 4, ins.RepeatCount)
	for _, c := range ins.RepeatCustomers {
		assert.Greater(t, c.OrdersCount, 1)
	}
	// Descending by order count, ties stable: Jane was seen before Robert.
	assert.Equal(t, []RepeatCustomer{
		{FirstName: "Emily", LastName: "Davis", OrdersCount: 4},
		{FirstName: "John", LastName: "Doe", OrdersCount: 3},
		{FirstName: "Jane", LastName: "Smith", OrdersCount: 2},
		{FirstName: "Robert", LastName: "Wilson", OrdersCount: 2},
	}, ins.RepeatCustomers)
}

func TestComputeCustomersTruncatesTopFive(t *testing.T) {
	var records []Record
	for i := 0; i < 7; i++ {
		records = append(records, Record{"first_name": "C", "orders_count": 2 + i})
	}

	ins := Compute(CategoryCustomers, records, Intent{}).(CustomerInsights)
	assert.Equal(t, 7, ins.RepeatCount)
	assert.Len(t, ins.RepeatCustomers, 5)
}

func TestComputeEmptyAndUnknownCategories(t *testing.T) {
	for _, category := range []Category{CategorySales, CategoryInventory, CategoryCustomers, CategoryProducts, CategoryGeneral} {
		ins, ok := Compute(category, nil, Intent{}).(OtherInsights)
		require.Truef(t, ok, "category %s with no records", category)
		assert.Equal(t, "data retrieved but analysis needed", ins.Message)
		assert.Zero(t, ins.RecordCount)
	}

	ins := Compute(CategoryProducts, []Record{{"title": "x"}}, Intent{}).(OtherInsights)
	assert.Equal(t, 1, ins.RecordCount)
}

func TestComputeIsIdempotent(t *testing.T) {
	records := []Record{
		salesRecord("125.50", Record{"title": "Coffee Beans Premium", "quantity": 2}),
		salesRecord("89.99", Record{"title": "Artisan Tea Collection", "quantity": 1}),
	}
	intent := Intent{TimePeriod: "last week"}

	first := Compute(CategorySales, records, intent)
	second := Compute(CategorySales, records, intent)
	assert.Equal(t, first, second)
}
