package shopify

import (
	"context"

	"storelens/internal/analyzer"
)

// StaticSource serves the demo fixture tables instead of calling a real
// storefront. It backs the test suite and is selected at startup when no
// access token is configured.
type StaticSource struct{}

func NewStaticSource() *StaticSource { return &StaticSource{} }

func (s *StaticSource) Fetch(ctx context.Context, storeID, query string, intent analyzer.Intent) (analyzer.Batch, error) {
	var records []analyzer.Record
	switch intent.Category {
	case analyzer.CategoryInventory:
		records = filterByProductTitle(fixtureInventory, intent.MentionedEntity)
	case analyzer.CategorySales:
		records = fixtureOrders
	case analyzer.CategoryCustomers:
		records = fixtureCustomers
	case analyzer.CategoryProducts:
		records = fixtureProducts
	default:
		return analyzer.Batch{Category: analyzer.CategoryGeneral}, nil
	}
	return analyzer.Batch{
		Category: intent.Category,
		Records:  records,
		Count:    len(records),
	}, nil
}

var fixtureInventory = []analyzer.Record{
	{"inventory_item_id": 1, "location_id": 1, "available": 45, "incoming": 50, "committed": 5, "product_title": "Coffee Beans Premium"},
	{"inventory_item_id": 2, "location_id": 1, "available": 23, "incoming": 0, "committed": 8, "product_title": "Vintage Mug Set"},
	{"inventory_item_id": 3, "location_id": 1, "available": 12, "incoming": 20, "committed": 3, "product_title": "Artisan Tea Collection"},
	{"inventory_item_id": 4, "location_id": 1, "available": 8, "incoming": 0, "committed": 2, "product_title": "Espresso Machine"},
	{"inventory_item_id": 5, "location_id": 1, "available": 34, "incoming": 15, "committed": 6, "product_title": "Coffee Grinder"},
	{"inventory_item_id": 6, "location_id": 1, "available": 67, "incoming": 0, "committed": 12, "product_title": "French Press"},
	{"inventory_item_id": 7, "location_id": 1, "available": 5, "incoming": 0, "committed": 1, "product_title": "Milk Frother"},
}

var fixtureOrders = []analyzer.Record{
	{
		"id": 1, "order_number": 1001, "total_price": "125.50", "created_at": "2024-12-20T10:30:00Z",
		"line_items": []any{
			map[string]any{"title": "Coffee Beans Premium", "quantity": 2, "price": "45.00"},
			map[string]any{"title": "Vintage Mug Set", "quantity": 1, "price": "35.50"},
		},
		"customer": map[string]any{"email": "john.doe@example.com", "first_name": "John", "last_name": "Doe"},
	},
	{
		"id": 2, "order_number": 1002, "total_price": "89.99", "created_at": "2024-12-19T14:20:00Z",
		"line_items": []any{
			map[string]any{"title": "Artisan Tea Collection", "quantity": 1, "price": "89.99"},
		},
		"customer": map[string]any{"email": "jane.smith@example.com", "first_name": "Jane", "last_name": "Smith"},
	},
	{
		"id": 3, "order_number": 1003, "total_price": "156.75", "created_at": "2024-12-18T09:15:00Z",
		"line_items": []any{
			map[string]any{"title": "Coffee Beans Premium", "quantity": 3, "price": "45.00"},
			map[string]any{"title": "Espresso Machine", "quantity": 1, "price": "21.75"},
		},
		"customer": map[string]any{"email": "john.doe@example.com", "first_name": "John", "last_name": "Doe"},
	},
	{
		"id": 4, "order_number": 1004, "total_price": "67.50", "created_at": "2024-12-17T16:45:00Z",
		"line_items": []any{
			map[string]any{"title": "Vintage Mug Set", "quantity": 2, "price": "35.50"},
		},
		"customer": map[string]any{"email": "mike.johnson@example.com", "first_name": "Mike", "last_name": "Johnson"},
	},
	{
		"id": 5, "order_number": 1005, "total_price": "234.99", "created_at": "2024-12-16T11:30:00Z",
		"line_items": []any{
			map[string]any{"title": "Coffee Beans Premium", "quantity": 4, "price": "45.00"},
			map[string]any{"title": "Coffee Grinder", "quantity": 1, "price": "54.99"},
		},
		"customer": map[string]any{"email": "sarah.williams@example.com", "first_name": "Sarah", "last_name": "Williams"},
	},
	{
		"id": 6, "order_number": 1006, "total_price": "45.00", "created_at": "2024-12-15T13:20:00Z",
		"line_items": []any{
			map[string]any{"title": "Coffee Beans Premium", "quantity": 1, "price": "45.00"},
		},
		"customer": map[string]any{"email": "john.doe@example.com", "first_name": "John", "last_name": "Doe"},
	},
	{
		"id": 7, "order_number": 1007, "total_price": "124.99", "created_at": "2024-12-14T10:10:00Z",
		"line_items": []any{
			map[string]any{"title": "Artisan Tea Collection", "quantity": 1, "price": "89.99"},
			map[string]any{"title": "Vintage Mug Set", "quantity": 1, "price": "35.50"},
		},
		"customer": map[string]any{"email": "jane.smith@example.com", "first_name": "Jane", "last_name": "Smith"},
	},
	{
		"id": 8, "order_number": 1008, "total_price": "178.50", "created_at": "2024-12-13T15:30:00Z",
		"line_items": []any{
			map[string]any{"title": "Espresso Machine", "quantity": 2, "price": "21.75"},
			map[string]any{"title": "Coffee Beans Premium", "quantity": 3, "price": "45.00"},
		},
		"customer": map[string]any{"email": "david.brown@example.com", "first_name": "David", "last_name": "Brown"},
	},
}

var fixtureCustomers = []analyzer.Record{
	{"id": 1, "email": "john.doe@example.com", "first_name": "John", "last_name": "Doe", "orders_count": 3, "total_spent": "227.50", "created_at": "2024-11-01T10:00:00Z"},
	{"id": 2, "email": "jane.smith@example.com", "first_name": "Jane", "last_name": "Smith", "orders_count": 2, "total_spent": "214.98", "created_at": "2024-11-15T14:00:00Z"},
	{"id": 3, "email": "mike.johnson@example.com", "first_name": "Mike", "last_name": "Johnson", "orders_count": 1, "total_spent": "67.50", "created_at": "2024-12-01T09:00:00Z"},
	{"id": 4, "email": "sarah.williams@example.com", "first_name": "Sarah", "last_name": "Williams", "orders_count": 1, "total_spent": "234.99", "created_at": "2024-12-05T11:00:00Z"},
	{"id": 5, "email": "david.brown@example.com", "first_name": "David", "last_name": "Brown", "orders_count": 1, "total_spent": "178.50", "created_at": "2024-12-10T15:00:00Z"},
	{"id": 6, "email": "emily.davis@example.com", "first_name": "Emily", "last_name": "Davis", "orders_count": 4, "total_spent": "456.75", "created_at": "2024-10-20T12:00:00Z"},
	{"id": 7, "email": "robert.wilson@example.com", "first_name": "Robert", "last_name": "Wilson", "orders_count": 2, "total_spent": "189.99", "created_at": "2024-11-25T16:00:00Z"},
}

var fixtureProducts = []analyzer.Record{
	{"id": 1, "title": "Coffee Beans Premium", "vendor": "Cafe Nostalgia", "product_type": "Coffee", "created_at": "2024-01-15T10:00:00Z"},
	{"id": 2, "title": "Vintage Mug Set", "vendor": "Cafe Nostalgia", "product_type": "Accessories", "created_at": "2024-02-20T10:00:00Z"},
	{"id": 3, "title": "Artisan Tea Collection", "vendor": "Cafe Nostalgia", "product_type": "Tea", "created_at": "2024-03-10T10:00:00Z"},
	{"id": 4, "title": "Espresso Machine", "vendor": "Cafe Nostalgia", "product_type": "Equipment", "created_at": "2024-04-05T10:00:00Z"},
	{"id": 5, "title": "Coffee Grinder", "vendor": "Cafe Nostalgia", "product_type": "Equipment", "created_at": "2024-05-12T10:00:00Z"},
}
