package specialist

import "strings"

// WellKnownPath is the discovery path every specialist serves its
// descriptor from.
const WellKnownPath = "/.well-known/agent.json"

// AgentCard is the self-describing descriptor a specialist publishes.
type AgentCard struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	Version      string       `json:"version"`
	Capabilities Capabilities `json:"capabilities"`
	Skills       []AgentSkill `json:"skills,omitempty"`
}

// Capabilities advertises optional protocol features. The router ignores
// them today but keeps them for operator visibility.
type Capabilities struct {
	Streaming         bool `json:"streaming,omitempty"`
	PushNotifications bool `json:"push_notifications,omitempty"`
}

// AgentSkill describes one capability a specialist advertises.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// financeVocabulary are the keywords that mark a card as the finance
// specialist when found in its name or description.
var financeVocabulary = []string{"financial", "finance", "stock", "market"}

// matchesNews reports whether a card describes the news specialist.
func matchesNews(card AgentCard) bool {
	return strings.Contains(strings.ToLower(card.Name), "news") ||
		strings.Contains(strings.ToLower(card.Description), "news")
}

// matchesFinance reports whether a card describes the finance specialist.
// The news and finance checks are independent: a single card may claim both
// roles.
func matchesFinance(card AgentCard) bool {
	name := strings.ToLower(card.Name)
	desc := strings.ToLower(card.Description)
	for _, kw := range financeVocabulary {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
