package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"storelens/internal/llm"
	"storelens/internal/metrics"
)

// Synthesizer turns a question and its intent into an analytics query
// string. It never fails: any model error yields a fixed template keyed by
// the intent category.
type Synthesizer struct {
	model Model
}

var fallbackQueries = map[Category]string{
	CategoryInventory: `FROM inventory_levels
SELECT available, incoming, committed
LIMIT 10`,
	CategorySales: `FROM orders
WHERE created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)
SELECT SUM(total_price) as total_revenue, COUNT(*) as order_count`,
	CategoryCustomers: `FROM customers
SELECT COUNT(*) as total_customers`,
}

const defaultFallbackQuery = `FROM orders
SELECT COUNT(*) as total_orders
LIMIT 1`

func (s *Synthesizer) Synthesize(ctx context.Context, question string, intent Intent) string {
	query, err := s.model.SynthesizeQuery(ctx, question, intent)
	if err == nil && strings.TrimSpace(query) != "" {
		return strings.TrimSpace(query)
	}
	if err != nil && !errors.Is(err, llm.ErrUnavailable) {
		slog.Warn("query synthesis failed, using fallback query", "error", err)
		metrics.PipelineFallbacks.WithLabelValues("synthesize").Inc()
	}
	return FallbackQuery(intent.Category)
}

// FallbackQuery returns the fixed query template for a category. The
// templates depend only on the category, never on the question text.
func FallbackQuery(category Category) string {
	if q, ok := fallbackQueries[category]; ok {
		return q
	}
	return defaultFallbackQuery
}
