package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"storelens/internal/llm"
	"storelens/internal/metrics"
)

// Classifier resolves a question into an Intent. It never fails: a model
// call failure degrades to a default general intent, and an unconfigured
// model routes to rule-based keyword classification.
type Classifier struct {
	model Model
}

func (c *Classifier) Classify(ctx context.Context, question string) Intent {
	intent, err := c.model.ClassifyIntent(ctx, question)
	if err == nil {
		return intent
	}
	if errors.Is(err, llm.ErrUnavailable) {
		return classifyByRules(question)
	}

	slog.Warn("intent classification failed, using default intent", "error", err)
	metrics.PipelineFallbacks.WithLabelValues("classify").Inc()
	return Intent{
		Category:   CategoryGeneral,
		Metrics:    []string{},
		Confidence: ConfidenceLow,
	}
}

var (
	inventoryKeywords = []string{"inventory", "stock", "reorder", "units", "available"}
	salesKeywords     = []string{"sales", "revenue", "selling", "top", "products"}
	customerKeywords  = []string{"customer", "repeat", "orders"}
)

// timePeriodRules are matched in priority order; the first hit wins.
var timePeriodRules = []struct {
	phrases []string
	period  string
}{
	{[]string{"last week", "past week"}, "last week"},
	{[]string{"last month", "past month"}, "last month"},
	{[]string{"next week"}, "next week"},
	{[]string{"next month"}, "next month"},
	{[]string{"90 days", "last 90"}, "last 90 days"},
	{[]string{"30 days", "last 30"}, "last 30 days"},
	{[]string{"7 days", "last 7"}, "last 7 days"},
}

// classifyByRules is the dependency-free classification path: keyword
// matching on the lower-cased question, first matching rule wins.
func classifyByRules(question string) Intent {
	q := strings.ToLower(question)

	category := CategoryGeneral
	switch {
	case containsAny(q, inventoryKeywords):
		category = CategoryInventory
	case containsAny(q, salesKeywords):
		category = CategorySales
	case containsAny(q, customerKeywords):
		category = CategoryCustomers
	}

	intent := Intent{
		Category:   category,
		Metrics:    []string{},
		Confidence: ConfidenceMedium,
	}
	for _, rule := range timePeriodRules {
		if containsAny(q, rule.phrases) {
			intent.TimePeriod = rule.period
			break
		}
	}
	return intent
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
