package analyzer

import "context"

// stubModel is a scripted Model for exercising stage fallbacks.
type stubModel struct {
	intent      Intent
	classifyErr error

	query    string
	synthErr error

	narrative string
	narrErr   error
}

func (m *stubModel) ClassifyIntent(context.Context, string) (Intent, error) {
	return m.intent, m.classifyErr
}

func (m *stubModel) SynthesizeQuery(context.Context, string, Intent) (string, error) {
	return m.query, m.synthErr
}

func (m *stubModel) ComposeNarrative(context.Context, string, Intent, Insights) (string, error) {
	return m.narrative, m.narrErr
}
