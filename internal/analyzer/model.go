package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storelens/internal/llm"
)

// Model is the capability surface the pipeline needs from a language model.
// Two implementations exist: one backed by a chat-completion provider and
// one for deployments with no model configured. The choice is made once at
// startup and injected into the pipeline.
type Model interface {
	ClassifyIntent(ctx context.Context, question string) (Intent, error)
	SynthesizeQuery(ctx context.Context, question string, intent Intent) (string, error)
	ComposeNarrative(ctx context.Context, question string, intent Intent, insights Insights) (string, error)
}

// Disabled is the Model used when no model credential is configured. Every
// method reports llm.ErrUnavailable so callers take their fallback path.
type Disabled struct{}

func (Disabled) ClassifyIntent(context.Context, string) (Intent, error) {
	return Intent{}, llm.ErrUnavailable
}

func (Disabled) SynthesizeQuery(context.Context, string, Intent) (string, error) {
	return "", llm.ErrUnavailable
}

func (Disabled) ComposeNarrative(context.Context, string, Intent, Insights) (string, error) {
	return "", llm.ErrUnavailable
}

// Every outbound model call runs under its own deadline; a timeout is
// handled like any other provider error and degrades to the fallback.
const modelCallTimeout = 15 * time.Second

type openAIModel struct {
	provider llm.Provider
}

// NewModel wraps a chat-completion provider in the pipeline's capability
// interface.
func NewModel(provider llm.Provider) Model {
	return &openAIModel{provider: provider}
}

const classifySystemPrompt = "You are an expert at analyzing business questions and extracting intent. Always respond with valid JSON only."

func classifyPrompt(question string) string {
	return fmt.Sprintf(`Analyze the following question about Shopify store analytics and classify it.

Question: %q

Return a JSON object with:
- intent_type: one of ["inventory", "sales", "customers", "products", "general"]
- time_period: extracted time period (e.g., "last 7 days", "next month", "last 30 days") or null
- metrics: list of metrics mentioned (e.g., ["units", "revenue", "orders"])
- product_mentioned: product name if mentioned, or null
- confidence: "high", "medium", or "low"

Example response:
{
  "intent_type": "inventory",
  "time_period": "next month",
  "metrics": ["units"],
  "product_mentioned": "Product X",
  "confidence": "high"
}

Only return the JSON object, no additional text.`, question)
}

func (m *openAIModel) ClassifyIntent(ctx context.Context, question string) (Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	resp, err := m.provider.Complete(ctx, classifySystemPrompt, classifyPrompt(question),
		llm.WithTemperature(0.3), llm.WithMaxTokens(200))
	if err != nil {
		return Intent{}, fmt.Errorf("intent classification: %w", err)
	}

	var intent Intent
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Content)), &intent); err != nil {
		return Intent{}, fmt.Errorf("parsing intent response: %w", err)
	}
	intent.Category = ParseCategory(string(intent.Category))
	switch intent.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		intent.Confidence = ConfidenceLow
	}
	if intent.Metrics == nil {
		intent.Metrics = []string{}
	}
	return intent, nil
}

const synthesizeSystemPrompt = `You are an expert at generating ShopifyQL queries.
ShopifyQL is Shopify's analytics query language.
Common tables: orders, products, inventory_levels, customers.
Always return ONLY the ShopifyQL query, no explanations.`

var queryExamples = map[Category]string{
	CategoryInventory: `Example: "How many units of Product X will I need next month?"
ShopifyQL:
FROM inventory_levels
WHERE product_title = 'Product X'
SELECT available, incoming, committed`,
	CategorySales: `Example: "What were my top 5 selling products last week?"
ShopifyQL:
FROM orders
WHERE created_at >= '2024-01-01' AND created_at < '2024-01-08'
GROUP BY product_title
SELECT product_title, SUM(quantity) as total_sold
ORDER BY total_sold DESC
LIMIT 5`,
	CategoryCustomers: `Example: "Which customers placed repeat orders in the last 90 days?"
ShopifyQL:
FROM orders
WHERE created_at >= DATE_SUB(NOW(), INTERVAL 90 DAY)
GROUP BY customer_email
HAVING COUNT(*) > 1
SELECT customer_email, COUNT(*) as order_count`,
}

func synthesizePrompt(question string, intent Intent) string {
	example, ok := queryExamples[intent.Category]
	if !ok {
		example = queryExamples[CategorySales]
	}
	timePeriod := intent.TimePeriod
	if timePeriod == "" {
		timePeriod = "not specified"
	}
	entity := intent.MentionedEntity
	if entity == "" {
		entity = "not specified"
	}
	return fmt.Sprintf(`Generate a ShopifyQL query for the following question:

Question: %q

Intent: %s
Time Period: %s
Product: %s

%s

Generate the ShopifyQL query for this specific question:`, question, intent.Category, timePeriod, entity, example)
}

func (m *openAIModel) SynthesizeQuery(ctx context.Context, question string, intent Intent) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	resp, err := m.provider.Complete(ctx, synthesizeSystemPrompt, synthesizePrompt(question, intent),
		llm.WithTemperature(0.2), llm.WithMaxTokens(500))
	if err != nil {
		return "", fmt.Errorf("query synthesis: %w", err)
	}
	return stripCodeFence(resp.Content), nil
}

// stripCodeFence unwraps a fenced code block, dropping a language tag line
// (such as "sql" or "shopifyql") that follows the opening fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		switch strings.ToLower(strings.TrimSpace(s[:nl])) {
		case "sql", "shopifyql":
			s = strings.TrimSpace(s[nl+1:])
		}
	}
	return s
}

const narrateSystemPrompt = "You are a helpful business analytics assistant. Provide clear, actionable insights in simple language."

func narratePrompt(question string, insights Insights) string {
	return fmt.Sprintf(`Based on the following question and data insights, provide a clear, business-friendly answer.

Original Question: %q

Data Insights:
%s

Provide a concise, helpful answer (2-3 sentences) that directly addresses the question.
Use simple language that a business owner would understand.
If the data suggests a recommendation, include it.`, question, renderInsights(insights))
}

func (m *openAIModel) ComposeNarrative(ctx context.Context, question string, intent Intent, insights Insights) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	resp, err := m.provider.Complete(ctx, narrateSystemPrompt, narratePrompt(question, insights),
		llm.WithTemperature(0.7), llm.WithMaxTokens(200))
	if err != nil {
		return "", fmt.Errorf("narrative composition: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// renderInsights formats insights into readable text for the model, with a
// fixed field order per category.
func renderInsights(insights Insights) string {
	switch ins := insights.(type) {
	case SalesInsights:
		products := make([]string, 0, len(ins.TopProducts))
		for _, p := range ins.TopProducts {
			products = append(products, fmt.Sprintf("%s (%d units)", p.Title, p.Quantity))
		}
		return fmt.Sprintf(`Total Revenue: $%s
Total Orders: %d
Average Order Value: $%s
Top Products: %s
Time Period: %s`,
			ins.TotalRevenue.StringFixed(2), ins.TotalOrders, ins.AvgOrderValue.StringFixed(2),
			strings.Join(products, ", "), ins.TimePeriod)
	case InventoryInsights:
		return fmt.Sprintf(`Total Available Units: %d
Incoming Units: %d
Committed Units: %d
Net Available: %d
Products Tracked: %d`,
			ins.TotalAvailable, ins.TotalIncoming, ins.TotalCommitted, ins.NetAvailable, ins.ProductCount)
	case CustomerInsights:
		out := fmt.Sprintf("Total Customers: %d\nRepeat Customers: %d", ins.TotalCustomers, ins.RepeatCount)
		if len(ins.RepeatCustomers) > 0 {
			top := ins.RepeatCustomers
			if len(top) > 3 {
				top = top[:3]
			}
			names := make([]string, 0, len(top))
			for _, c := range top {
				names = append(names, fmt.Sprintf("%s %s (%d orders)", c.FirstName, c.LastName, c.OrdersCount))
			}
			out += "\nRepeat Customers: " + strings.Join(names, ", ")
		}
		return out
	case OtherInsights:
		return fmt.Sprintf("Message: %s\nRecords: %d", ins.Message, ins.RecordCount)
	}
	return fmt.Sprintf("%+v", insights)
}
