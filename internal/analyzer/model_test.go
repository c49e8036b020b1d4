package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storelens/internal/llm"
)

// fakeProvider is a scripted llm.Provider recording the last call.
type fakeProvider struct {
	content string
	err     error

	lastSystem string
	lastUser   string
	lastOpts   llm.Options
}

func (f *fakeProvider) Complete(ctx context.Context, system, user string, opts ...llm.Option) (*llm.Response, error) {
	f.lastSystem = system
	f.lastUser = user
	f.lastOpts = llm.Options{}
	for _, opt := range opts {
		opt(&f.lastOpts)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.content}, nil
}

func TestClassifyIntentParsesStrictJSON(t *testing.T) {
	provider := &fakeProvider{content: `{
		"intent_type": "inventory",
		"time_period": "next month",
		"metrics": ["units"],
		"product_mentioned": "Coffee Beans Premium",
		"confidence": "high"
	}`}
	model := NewModel(provider)

	intent, err := model.ClassifyIntent(context.Background(), "How many units of Coffee Beans Premium will I need next month?")
	require.NoError(t, err)

	assert.Equal(t, CategoryInventory, intent.Category)
	assert.Equal(t, "next month", intent.TimePeriod)
	assert.Equal(t, []string{"units"}, intent.Metrics)
	assert.Equal(t, "Coffee Beans Premium", intent.MentionedEntity)
	assert.Equal(t, ConfidenceHigh, intent.Confidence)

	assert.Equal(t, 0.3, provider.lastOpts.Temperature)
	assert.Equal(t, int64(200), provider.lastOpts.MaxTokens)
}

func TestClassifyIntentNormalizesUnknownValues(t *testing.T) {
	provider := &fakeProvider{content: `{"intent_type": "refunds", "confidence": "certain"}`}
	model := NewModel(provider)

	intent, err := model.ClassifyIntent(context.Background(), "question")
	require.NoError(t, err)

	assert.Equal(t, CategoryGeneral, intent.Category)
	assert.Equal(t, ConfidenceLow, intent.Confidence)
	assert.NotNil(t, intent.Metrics)
}

func TestClassifyIntentMalformedOutput(t *testing.T) {
	model := NewModel(&fakeProvider{content: "I think this is about inventory."})

	_, err := model.ClassifyIntent(context.Background(), "question")
	assert.Error(t, err)
}

func TestClassifyIntentProviderError(t *testing.T) {
	model := NewModel(&fakeProvider{err: errors.New("connection refused")})

	_, err := model.ClassifyIntent(context.Background(), "question")
	assert.Error(t, err)
}

func TestSynthesizeQueryStripsCodeFence(t *testing.T) {
	provider := &fakeProvider{content: "```sql\nFROM orders\nSELECT COUNT(*)\n```"}
	model := NewModel(provider)

	query, err := model.SynthesizeQuery(context.Background(), "how many orders?", Intent{Category: CategorySales})
	require.NoError(t, err)

	assert.Equal(t, "FROM orders\nSELECT COUNT(*)", query)
	assert.Equal(t, 0.2, provider.lastOpts.Temperature)
	assert.Equal(t, int64(500), provider.lastOpts.MaxTokens)
}

func TestSynthesizePromptUsesCategoryExample(t *testing.T) {
	provider := &fakeProvider{content: "FROM inventory_levels SELECT available"}
	model := NewModel(provider)

	_, err := model.SynthesizeQuery(context.Background(), "stock?", Intent{Category: CategoryInventory})
	require.NoError(t, err)
	assert.Contains(t, provider.lastUser, "FROM inventory_levels")

	// Unrecognized categories fall back to the sales example.
	_, err = model.SynthesizeQuery(context.Background(), "anything", Intent{Category: CategoryGeneral})
	require.NoError(t, err)
	assert.Contains(t, provider.lastUser, "top 5 selling products")
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"FROM orders SELECT *", "FROM orders SELECT *"},
		{"```\nFROM orders\n```", "FROM orders"},
		{"```sql\nFROM orders\n```", "FROM orders"},
		{"```shopifyql\nFROM orders\nLIMIT 1\n```", "FROM orders\nLIMIT 1"},
		{"  ```sql\nFROM orders\n```  ", "FROM orders"},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, stripCodeFence(tc.in), "input %q", tc.in)
	}
}

func TestComposeNarrativeEmbedsInsights(t *testing.T) {
	provider := &fakeProvider{content: "You made money."}
	model := NewModel(provider)

	ins := Compute(CategoryInventory, []Record{{"available": 45, "incoming": 50, "committed": 5}}, Intent{})
	answer, err := model.ComposeNarrative(context.Background(), "how is stock?", Intent{}, ins)
	require.NoError(t, err)

	assert.Equal(t, "You made money.", answer)
	assert.Contains(t, provider.lastUser, "Total Available Units: 45")
	assert.Contains(t, provider.lastUser, "Net Available: 90")
	assert.Equal(t, 0.7, provider.lastOpts.Temperature)
	assert.Equal(t, int64(200), provider.lastOpts.MaxTokens)
}

func TestDisabledModelReportsUnavailable(t *testing.T) {
	model := Disabled{}

	_, err := model.ClassifyIntent(context.Background(), "q")
	assert.True(t, errors.Is(err, llm.ErrUnavailable))

	_, err = model.SynthesizeQuery(context.Background(), "q", Intent{})
	assert.True(t, errors.Is(err, llm.ErrUnavailable))

	_, err = model.ComposeNarrative(context.Background(), "q", Intent{}, OtherInsights{})
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
}
