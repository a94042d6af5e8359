package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_FinanceRequiresTopicAndTicker(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantRoute    Route
		wantEntities []string
		wantTopic    bool
	}{
		{
			name:         "sigil ticker with finance keyword",
			input:        "What's the outlook for $AAPL this quarter?",
			wantRoute:    RouteFinance,
			wantEntities: []string{"AAPL"},
			wantTopic:    true,
		},
		{
			name:         "exchange qualified ticker",
			input:        "Latest earnings for NASDAQ:GOOG please",
			wantRoute:    RouteFinance,
			wantEntities: []string{"GOOG"},
			wantTopic:    true,
		},
		{
			name:         "labeled ticker",
			input:        "What is the dividend for ticker: MSFT",
			wantRoute:    RouteFinance,
			wantEntities: []string{"MSFT"},
			wantTopic:    true,
		},
		{
			name:         "parenthesized labeled ticker",
			input:        "Revenue growth at Microsoft (symbol: MSFT)?",
			wantRoute:    RouteFinance,
			wantEntities: []string{"MSFT"},
			wantTopic:    true,
		},
		{
			name:         "finance keyword without ticker stays news",
			input:        "How did earnings season go overall?",
			wantRoute:    RouteNews,
			wantEntities: []string{},
			wantTopic:    true,
		},
		{
			name:         "ticker without finance keyword stays news",
			input:        "I saw $TSLA mentioned in a meme",
			wantRoute:    RouteNews,
			wantEntities: []string{"TSLA"},
			wantTopic:    false,
		},
		{
			name:         "plain news question",
			input:        "Tell me about the election",
			wantRoute:    RouteNews,
			wantEntities: []string{},
			wantTopic:    false,
		},
		{
			name:         "multiple tickers are deduplicated and sorted",
			input:        "Compare valuation of $MSFT, $AAPL and NYSE:AAPL",
			wantRoute:    RouteFinance,
			wantEntities: []string{"AAPL", "MSFT"},
			wantTopic:    true,
		},
		{
			name:         "class share suffix survives",
			input:        "Any guidance changes for $BRK.A?",
			wantRoute:    RouteFinance,
			wantEntities: []string{"BRK.A"},
			wantTopic:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			assert.Equal(t, tt.wantRoute, got.Route)
			assert.Equal(t, tt.wantEntities, got.Entities)
			assert.Equal(t, tt.wantTopic, got.TopicMatch)
			assert.NotEmpty(t, got.Note)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	input := "Q3 results for $AAPL, $MSFT and NASDAQ:GOOG"

	first := Classify(input)
	second := Classify(input)

	require.Equal(t, first, second)
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT"}, first.Entities)
}

func TestClassify_FinanceNoteNamesTickers(t *testing.T) {
	got := Classify("price target for $NVDA?")

	require.Equal(t, RouteFinance, got.Route)
	assert.Contains(t, got.Note, "NVDA")
}

func TestClassify_LengthBounds(t *testing.T) {
	// The sigil pattern caps the base symbol at five letters, so an
	// over-long "symbol" never reaches the entity set.
	got := Classify("earnings for $TOOLONG")

	assert.NotContains(t, got.Entities, "TOOLONG")
}
