// Package classify extracts a routing signal from raw user text.
//
// Classification is pure and total: there is no failure mode. Text that
// matches neither the financial vocabulary nor any ticker pattern simply
// degrades to the news route.
package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Route identifies which specialist a request should be directed to.
type Route string

const (
	RouteNews    Route = "news"
	RouteFinance Route = "finance"
)

// Result describes how the router should react to a message.
type Result struct {
	// Route is the chosen specialist route.
	Route Route
	// Entities holds extracted ticker symbols, deduplicated, upper-cased,
	// and sorted for deterministic output.
	Entities []string
	// TopicMatch reports whether the text expresses financial intent.
	TopicMatch bool
	// Note is a short human-readable policy note for auditability.
	Note string
}

// financeKeywords is the fixed vocabulary describing financial intent.
// Membership is tested against the lower-cased input.
var financeKeywords = []string{
	"earnings",
	"revenue",
	"guidance",
	"eps",
	"dividend",
	"split",
	"stock",
	"share price",
	"price target",
	"valuation",
	"market cap",
	"cash flow",
	"balance sheet",
	"income statement",
	"analyst",
	"buyback",
	"quarter",
	"q1", "q2", "q3", "q4",
	"10-k", "10q", "10-q",
	"sec filing",
	"financial results",
	"results",
	"outlook",
}

// tickerPatterns recognize symbol variants in original-case text:
//
//	$AAPL
//	NASDAQ:GOOG, NYSE:IBM, TSX:SHOP, LSE:BP
//	"ticker: MSFT", "ticker symbol MSFT", "(symbol: MSFT)"
//
// All patterns are applied in order and accumulated; none short-circuits.
var tickerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$([A-Z]{1,5}(?:\.[A-Z]{1,3})?)\b`),
	regexp.MustCompile(`(?i)\b(?:NASDAQ|NYSE|AMEX|ASX|TSX|LSE|NSE|BSE)\s*[:\-]\s*([A-Z]{1,5}(?:\.[A-Z]{1,3})?)\b`),
	regexp.MustCompile(`(?i)\b(?:ticker(?:\s+symbol)?|symbol)\s*[:=]?\s*([A-Z]{1,5}(?:\.[A-Z]{1,3})?)\b`),
	regexp.MustCompile(`(?i)\((?:\s*(?:ticker(?:\s+symbol)?|symbol)\s*[:=]?\s*([A-Z]{1,5}(?:\.[A-Z]{1,3})?)\s*)\)`),
}

// Classify analyzes a user message and produces the routing signal.
//
// The route is finance only when both signals agree: the lower-cased text
// contains a financial keyword AND at least one ticker was extracted.
// Requiring both avoids false-positive finance routing on generic business
// chatter that lacks a concrete symbol.
func Classify(text string) Result {
	lowered := strings.ToLower(strings.TrimSpace(text))

	topicMatch := false
	for _, kw := range financeKeywords {
		if strings.Contains(lowered, kw) {
			topicMatch = true
			break
		}
	}

	entities := extractTickers(text)

	var route Route
	var note string
	if topicMatch && len(entities) > 0 {
		route = RouteFinance
		note = fmt.Sprintf("Policy: financial intent with ticker(s): %s.", strings.Join(entities, ", "))
	} else {
		route = RouteNews
		note = "Policy: route to News (non-financial or no ticker detected)."
	}

	return Result{
		Route:      route,
		Entities:   entities,
		TopicMatch: topicMatch,
		Note:       note,
	}
}

// extractTickers scans the original-case text with every pattern and returns
// the deduplicated, sorted symbol set. Matches are upper-cased and kept only
// when their length is between 1 and 6 characters.
func extractTickers(text string) []string {
	seen := make(map[string]struct{})
	for _, p := range tickerPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			t := strings.ToUpper(m[1])
			if len(t) >= 1 && len(t) <= 6 {
				seen[t] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
