package analyzer

import "context"

// Category is the question/data category a request resolves to.
type Category string

const (
	CategoryInventory Category = "inventory"
	CategorySales     Category = "sales"
	CategoryCustomers Category = "customers"
	CategoryProducts  Category = "products"
	CategoryGeneral   Category = "general"
)

// ParseCategory maps arbitrary input to a known category. Unknown or
// ambiguous values resolve to general.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryInventory, CategorySales, CategoryCustomers, CategoryProducts:
		return Category(s)
	default:
		return CategoryGeneral
	}
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Intent is the structured classification of a natural-language question.
// The JSON tags are the schema the model is instructed to emit, and the
// shape embedded into response metadata.
type Intent struct {
	Category        Category   `json:"intent_type"`
	TimePeriod      string     `json:"time_period,omitempty"`
	Metrics         []string   `json:"metrics"`
	MentionedEntity string     `json:"product_mentioned,omitempty"`
	Confidence      Confidence `json:"confidence"`
}

// Record is one semi-structured row returned by the data source. Field
// shapes are category-dependent; insight computation only probes for the
// fields it needs.
type Record map[string]any

// Batch is the typed result of one data-source fetch.
type Batch struct {
	Category Category
	Records  []Record
	Count    int
}

// Metadata rides along with every answer so callers can audit the
// reasoning path.
type Metadata struct {
	DataType         Category `json:"data_type,omitempty"`
	RecordsAnalyzed  int      `json:"records_analyzed"`
	Intent           *Intent  `json:"intent,omitempty"`
	OriginalQuestion string   `json:"original_question,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// Result is the terminal artifact of the pipeline.
type Result struct {
	Answer     string     `json:"answer"`
	Confidence Confidence `json:"confidence"`
	QueryUsed  string     `json:"query_used,omitempty"`
	Metadata   Metadata   `json:"metadata"`
}

// Source retrieves storefront records for a classified question. The query
// string is informational pass-through; dispatch is by intent category.
type Source interface {
	Fetch(ctx context.Context, storeID, query string, intent Intent) (Batch, error)
}
