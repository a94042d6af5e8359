package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/switchd/internal/classify"
)

func TestEvaluate_DecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		route      classify.Route
		entities   []string
		avail      Availability
		wantAction Action
		wantNotes  int
	}{
		{
			name:       "finance route with finance up",
			route:      classify.RouteFinance,
			entities:   []string{"AAPL"},
			avail:      Availability{NewsAvailable: true, FinanceAvailable: true},
			wantAction: DispatchFinance,
			wantNotes:  0,
		},
		{
			name:       "finance route falls back to news",
			route:      classify.RouteFinance,
			entities:   []string{"AAPL"},
			avail:      Availability{NewsAvailable: true, FinanceAvailable: false},
			wantAction: DispatchNews,
			wantNotes:  1,
		},
		{
			name:       "finance route with nothing up responds directly",
			route:      classify.RouteFinance,
			entities:   []string{"AAPL"},
			avail:      Availability{},
			wantAction: RespondDirect,
			wantNotes:  1,
		},
		{
			name:       "news route with news up",
			route:      classify.RouteNews,
			avail:      Availability{NewsAvailable: true, FinanceAvailable: true},
			wantAction: DispatchNews,
			wantNotes:  0,
		},
		{
			name:       "news route without news but with tickers uses finance",
			route:      classify.RouteNews,
			entities:   []string{"TSLA"},
			avail:      Availability{NewsAvailable: false, FinanceAvailable: true},
			wantAction: DispatchFinance,
			wantNotes:  1,
		},
		{
			name:       "news route without news and without tickers responds directly",
			route:      classify.RouteNews,
			avail:      Availability{NewsAvailable: false, FinanceAvailable: true},
			wantAction: RespondDirect,
			wantNotes:  1,
		},
		{
			name:       "news route with nothing up responds directly",
			route:      classify.RouteNews,
			avail:      Availability{},
			wantAction: RespondDirect,
			wantNotes:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(classify.Result{Route: tt.route, Entities: tt.entities}, tt.avail)
			assert.Equal(t, tt.wantAction, got.Action)
			assert.Len(t, got.Notes, tt.wantNotes)
		})
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	c := classify.Result{Route: classify.RouteFinance, Entities: []string{"AAPL"}}
	avail := Availability{NewsAvailable: true}

	_ = Evaluate(c, avail)

	assert.Equal(t, Availability{NewsAvailable: true}, avail)
	assert.Equal(t, []string{"AAPL"}, c.Entities)
}
