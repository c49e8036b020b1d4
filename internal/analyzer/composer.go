package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"storelens/internal/llm"
	"storelens/internal/metrics"
)

// Composer builds the final answer from fetched data. Insights are always
// computed deterministically; the model only narrates them, and any model
// failure degrades to the template composer.
type Composer struct {
	model Model
}

func (c *Composer) Compose(ctx context.Context, question string, intent Intent, batch Batch, query string) Result {
	insights := Compute(batch.Category, batch.Records, intent)

	answer, err := c.model.ComposeNarrative(ctx, question, intent, insights)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil && !errors.Is(err, llm.ErrUnavailable) {
			slog.Warn("narrative composition failed, using template answer", "error", err)
			metrics.PipelineFallbacks.WithLabelValues("compose").Inc()
		}
		answer = FallbackAnswer(insights, question)
	}

	confidence := intent.Confidence
	if confidence == "" {
		confidence = ConfidenceMedium
	}

	return Result{
		Answer:     strings.TrimSpace(answer),
		Confidence: confidence,
		QueryUsed:  query,
		Metadata: Metadata{
			DataType:        batch.Category,
			RecordsAnalyzed: len(batch.Records),
			Intent:          &intent,
		},
	}
}

// FallbackAnswer renders insights into a template-based answer with no
// external dependency.
func FallbackAnswer(insights Insights, question string) string {
	q := strings.ToLower(question)

	switch ins := insights.(type) {
	case SalesInsights:
		answer := fmt.Sprintf("Based on your sales data, you generated $%s in revenue from %d orders, with an average order value of $%s.",
			ins.TotalRevenue.StringFixed(2), ins.TotalOrders, ins.AvgOrderValue.StringFixed(2))
		if len(ins.TopProducts) > 0 && (strings.Contains(q, "top") || strings.Contains(q, "selling") || strings.Contains(q, "best")) {
			products := make([]string, 0, len(ins.TopProducts))
			for _, p := range ins.TopProducts {
				products = append(products, fmt.Sprintf("%s (%d units)", p.Title, p.Quantity))
			}
			answer += fmt.Sprintf(" Your top selling products were: %s.", strings.Join(products, ", "))
		}
		return answer

	case InventoryInsights:
		answer := fmt.Sprintf("Your inventory currently shows %d available units across %d products.",
			ins.TotalAvailable, ins.ProductCount)
		if ins.TotalIncoming > 0 {
			answer += fmt.Sprintf(" You have %d units incoming.", ins.TotalIncoming)
		}
		if ins.TotalCommitted > 0 {
			answer += fmt.Sprintf(" %d units are committed to orders.", ins.TotalCommitted)
		}
		answer += fmt.Sprintf(" Your net available inventory is %d units.", ins.NetAvailable)

		if strings.Contains(q, "reorder") || strings.Contains(q, "need") {
			// Rough heuristic: daily usage estimated as available/30, with a
			// floor of 5/day when nothing is on hand.
			dailyUsage := 5.0
			if ins.TotalAvailable > 0 {
				dailyUsage = float64(ins.TotalAvailable) / 30
			}
			switch {
			case strings.Contains(q, "week"):
				recommended := int(math.Round(dailyUsage * 7))
				if recommended < 20 {
					recommended = 20
				}
				answer += fmt.Sprintf(" Based on current inventory levels, you should reorder approximately %d units for next week to maintain adequate stock.", recommended)
			case strings.Contains(q, "month"):
				recommended := int(math.Round(dailyUsage * 30))
				if recommended < 50 {
					recommended = 50
				}
				answer += fmt.Sprintf(" Based on current inventory levels, you should reorder approximately %d units for next month to maintain adequate stock.", recommended)
			}
		}
		return answer

	case CustomerInsights:
		if strings.Contains(q, "repeat") {
			answer := fmt.Sprintf("You have %d repeat customers out of %d total customers.",
				ins.RepeatCount, ins.TotalCustomers)
			if len(ins.RepeatCustomers) > 0 {
				top := ins.RepeatCustomers
				if len(top) > 3 {
					top = top[:3]
				}
				names := make([]string, 0, len(top))
				for _, c := range top {
					names = append(names, fmt.Sprintf("%s %s (%d orders)", c.FirstName, c.LastName, c.OrdersCount))
				}
				answer += fmt.Sprintf(" Your top repeat customers are: %s.", strings.Join(names, ", "))
			}
			return answer
		}
		return fmt.Sprintf("Your store has %d customers in the system.", ins.TotalCustomers)
	}

	return "I've retrieved the data, but need more context to provide a specific answer. Please try rephrasing your question."
}
