package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"storelens/internal/metrics"
)

// Analyzer drives the pipeline: classify the question, synthesize a query,
// fetch data, compose the answer. Stages run strictly in sequence; each
// depends on the previous stage's output.
type Analyzer struct {
	classifier  *Classifier
	synthesizer *Synthesizer
	composer    *Composer
	source      Source
}

func New(model Model, source Source) *Analyzer {
	return &Analyzer{
		classifier:  &Classifier{model: model},
		synthesizer: &Synthesizer{model: model},
		composer:    &Composer{model: model},
		source:      source,
	}
}

// Answer runs the full pipeline for one question. It never returns an
// error: unhandled failures at any stage become a low-confidence apologetic
// result with the failure recorded in metadata.
func (a *Analyzer) Answer(ctx context.Context, question, storeID string) (result Result) {
	slog.Info("processing question", "store_id", storeID)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline panicked", "panic", r)
			metrics.PipelineFallbacks.WithLabelValues("pipeline").Inc()
			result = errorResult(fmt.Sprintf("%v", r))
		}
	}()

	intent := a.classifier.Classify(ctx, question)
	slog.Debug("classified intent", "category", intent.Category, "confidence", intent.Confidence)

	query := a.synthesizer.Synthesize(ctx, question, intent)

	batch, err := a.source.Fetch(ctx, storeID, query, intent)
	if err != nil {
		slog.Error("data fetch failed", "error", err)
		metrics.PipelineFallbacks.WithLabelValues("pipeline").Inc()
		return errorResult(err.Error())
	}

	result = a.composer.Compose(ctx, question, intent, batch, query)
	if result.Answer != "" {
		// Non-destructive addition: other metadata keys stay untouched.
		result.Metadata.OriginalQuestion = question
	}
	return result
}

func errorResult(cause string) Result {
	return Result{
		Answer:     fmt.Sprintf("I encountered an error processing your question: %s. Please try rephrasing or contact support.", cause),
		Confidence: ConfidenceLow,
		Metadata:   Metadata{Error: cause},
	}
}
