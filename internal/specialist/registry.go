package specialist

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/switchd/internal/policy"
)

// Registry tracks discovered specialists by card name and maps them onto
// the news and finance roles. It is populated once at startup and read-mostly
// afterward; the lock keeps hot reloads and concurrent reads safe anyway.
type Registry struct {
	mu        sync.RWMutex
	cards     map[string]AgentCard
	endpoints map[string]string // card name -> base URL
	newsName  string
	finName   string
	logger    *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		cards:     make(map[string]AgentCard),
		endpoints: make(map[string]string),
		logger:    logger,
	}
}

// Register records a discovered card and its endpoint, and claims any role
// the card's vocabulary matches. First match wins per role; a later card
// claiming an already-filled role is ignored with a warning so operators can
// spot duplicate deployments.
func (r *Registry) Register(card AgentCard, endpoint string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cards[card.Name] = card
	r.endpoints[card.Name] = endpoint

	if matchesNews(card) {
		if r.newsName == "" {
			r.newsName = card.Name
		} else if r.newsName != card.Name {
			r.logger.Warn("duplicate news specialist ignored",
				zap.String("kept", r.newsName),
				zap.String("ignored", card.Name))
		}
	}
	if matchesFinance(card) {
		if r.finName == "" {
			r.finName = card.Name
		} else if r.finName != card.Name {
			r.logger.Warn("duplicate finance specialist ignored",
				zap.String("kept", r.finName),
				zap.String("ignored", card.Name))
		}
	}
}

// Resolve returns the endpoint registered for a specialist name.
func (r *Registry) Resolve(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	endpoint, ok := r.endpoints[name]
	return endpoint, ok
}

// NewsName returns the card name holding the news role, if discovered.
func (r *Registry) NewsName() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newsName, r.newsName != ""
}

// FinanceName returns the card name holding the finance role, if discovered.
func (r *Registry) FinanceName() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.finName, r.finName != ""
}

// Availability snapshots which roles are currently filled, as read-only
// input for policy evaluation.
func (r *Registry) Availability() policy.Availability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return policy.Availability{
		NewsAvailable:    r.newsName != "",
		FinanceAvailable: r.finName != "",
	}
}

// Cards lists every discovered descriptor, sorted by name for deterministic
// output.
func (r *Registry) Cards() []AgentCard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AgentCard, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
