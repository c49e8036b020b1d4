package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storelens/internal/analyzer"
	"storelens/internal/config"
)

// Client fetches storefront records over the Admin REST API. The synthesized
// analytics query is informational pass-through; dispatch is by intent
// category (a production analytics integration would submit the query to the
// platform's analytics endpoint instead).
type Client struct {
	httpClient  *http.Client
	accessToken string
	apiVersion  string
}

func NewClient(cfg *config.ShopifyConfig) *Client {
	slog.Info("creating storefront client", "api_version", cfg.APIVersion)
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
	}
}

// resources maps an intent category onto the REST resource that backs it.
var resources = map[analyzer.Category]struct {
	path string
	key  string
}{
	analyzer.CategoryInventory: {"inventory_levels.json", "inventory_levels"},
	analyzer.CategorySales:     {"orders.json", "orders"},
	analyzer.CategoryCustomers: {"customers.json", "customers"},
	analyzer.CategoryProducts:  {"products.json", "products"},
}

func (c *Client) Fetch(ctx context.Context, storeID, query string, intent analyzer.Intent) (analyzer.Batch, error) {
	res, ok := resources[intent.Category]
	if !ok {
		// General questions have no backing resource.
		return analyzer.Batch{Category: analyzer.CategoryGeneral}, nil
	}

	url := fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/%s", storeID, c.apiVersion, res.path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return analyzer.Batch{}, fmt.Errorf("building storefront request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return analyzer.Batch{}, fmt.Errorf("fetching %s: %w", res.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return analyzer.Batch{}, fmt.Errorf("storefront returned status %d for %s", resp.StatusCode, res.path)
	}

	var envelope map[string][]analyzer.Record
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return analyzer.Batch{}, fmt.Errorf("decoding %s response: %w", res.path, err)
	}

	records := envelope[res.key]
	if intent.Category == analyzer.CategoryInventory {
		records = filterByProductTitle(records, intent.MentionedEntity)
	}

	slog.Debug("fetched storefront records", "category", intent.Category, "count", len(records))
	return analyzer.Batch{
		Category: intent.Category,
		Records:  records,
		Count:    len(records),
	}, nil
}

// filterByProductTitle keeps records whose product_title contains the
// mentioned entity, case-insensitively. A filter that matches nothing
// returns the unfiltered set: entity extraction is ambiguous enough that an
// empty result would over-filter more often than it would catch a genuinely
// unknown product.
func filterByProductTitle(records []analyzer.Record, entity string) []analyzer.Record {
	if entity == "" {
		return records
	}
	needle := strings.ToLower(entity)
	var filtered []analyzer.Record
	for _, rec := range records {
		title, _ := rec["product_title"].(string)
		if strings.Contains(strings.ToLower(title), needle) {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		return records
	}
	return filtered
}
