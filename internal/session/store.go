// Package session holds process-wide conversation state: per-session
// transcripts and per-(session, specialist) context identifiers.
//
// The store lives for the lifetime of the process and is never persisted;
// everything ages out on restart. History is append-only and is never
// reordered or truncated by the router.
package session

import "sync"

// Role identifies who produced a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a session transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// contextKey scopes a specialist-issued context identifier to the single
// (session, specialist) pair that created it.
type contextKey struct {
	sessionID  string
	specialist string
}

// Store is the process-wide session state. Safe for concurrent use; updates
// to a context identifier are last-writer-wins per key, which is acceptable
// because a well-behaved caller does not dispatch the same (session,
// specialist) pair concurrently.
type Store struct {
	mu       sync.RWMutex
	history  map[string][]Turn
	contexts map[contextKey]string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		history:  make(map[string][]Turn),
		contexts: make(map[contextKey]string),
	}
}

// AppendTurn appends one turn to a session transcript.
func (s *Store) AppendTurn(sessionID string, role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[sessionID] = append(s.history[sessionID], Turn{Role: role, Content: content})
}

// History returns a copy of the session transcript in append order.
func (s *Store) History(sessionID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.history[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// ContextID returns the stored context identifier for a (session,
// specialist) pair, if any exchange has succeeded before.
func (s *Store) ContextID(sessionID, specialist string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.contexts[contextKey{sessionID, specialist}]
	return id, ok
}

// SetContextID records the context identifier returned by a specialist,
// overwriting any prior value for the pair.
func (s *Store) SetContextID(sessionID, specialist, contextID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[contextKey{sessionID, specialist}] = contextID
}
