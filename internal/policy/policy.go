// Package policy turns a classification into a concrete routing action,
// taking specialist availability into account.
package policy

import (
	"github.com/fyrsmithlabs/switchd/internal/classify"
)

// Action is the concrete step the routing engine should take.
type Action string

const (
	// DispatchNews sends the request to the news specialist.
	DispatchNews Action = "dispatch_news"
	// DispatchFinance sends the request to the finance specialist.
	DispatchFinance Action = "dispatch_finance"
	// RespondDirect answers without any specialist.
	RespondDirect Action = "respond_direct"
)

// Availability is a read-only snapshot of which specialists are registered.
type Availability struct {
	NewsAvailable    bool
	FinanceAvailable bool
}

// Decision is the outcome of policy evaluation. Notes carry the fallback
// rationale, in the order the rules fired; the preferred (non-fallback)
// paths emit none.
type Decision struct {
	Action Action
	Notes  []string
}

// Fallback note texts. Every degraded path surfaces exactly one of these.
const (
	noteFinanceUnavailable = "Policy fallback: Financial specialist unavailable; falling back to News."
	noteNewsUnavailable    = "Policy fallback: News specialist unavailable; using Financial specialist due to provided ticker(s)."
	noteNoSpecialists      = "Policy fallback: No specialists available; responding directly."
)

// Evaluate maps a classification onto an action using a fixed decision
// table, evaluated top to bottom with first match winning:
//
//	FINANCE + finance up            -> DispatchFinance
//	FINANCE + finance down, news up -> DispatchNews    (fallback note)
//	FINANCE + both down             -> RespondDirect   (fallback note)
//	NEWS    + news up               -> DispatchNews
//	NEWS    + news down, finance up
//	        + tickers present       -> DispatchFinance (fallback note)
//	NEWS    + otherwise             -> RespondDirect   (fallback note)
//
// Evaluate never fails: the absence of every specialist degrades gracefully
// to RespondDirect. Availability is input only and is never mutated.
func Evaluate(c classify.Result, avail Availability) Decision {
	if c.Route == classify.RouteFinance {
		if avail.FinanceAvailable {
			return Decision{Action: DispatchFinance}
		}
		if avail.NewsAvailable {
			return Decision{Action: DispatchNews, Notes: []string{noteFinanceUnavailable}}
		}
		return Decision{Action: RespondDirect, Notes: []string{noteNoSpecialists}}
	}

	if avail.NewsAvailable {
		return Decision{Action: DispatchNews}
	}
	if avail.FinanceAvailable && len(c.Entities) > 0 {
		return Decision{Action: DispatchFinance, Notes: []string{noteNewsUnavailable}}
	}
	return Decision{Action: RespondDirect, Notes: []string{noteNoSpecialists}}
}
