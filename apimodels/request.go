package apimodels

type AnalyzeRequest struct {
	// Question is the natural language business question to answer
	Question string `json:"question"`

	// StoreID identifies which storefront the question is about
	StoreID string `json:"store_id"`
}
