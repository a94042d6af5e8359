package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/switchd/internal/classify"
	"github.com/fyrsmithlabs/switchd/internal/policy"
	"github.com/fyrsmithlabs/switchd/internal/session"
	"github.com/fyrsmithlabs/switchd/internal/specialist"
)

// State is one node of the fixed routing topology. The flow is acyclic:
//
//	CLASSIFY -> EVALUATE_POLICY -> {DISPATCH_FINANCE | DISPATCH_NEWS | COMPOSE} -> COMPOSE -> DONE
//
// A single request makes a single pass; there is no re-entry and no retry
// of the machine itself.
type State int

const (
	StateClassify State = iota
	StateEvaluatePolicy
	StateDispatchFinance
	StateDispatchNews
	StateCompose
	StateDone
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateClassify:
		return "classify"
	case StateEvaluatePolicy:
		return "evaluate_policy"
	case StateDispatchFinance:
		return "dispatch_finance"
	case StateDispatchNews:
		return "dispatch_news"
	case StateCompose:
		return "compose"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// fallbackAnswer is returned when a full pass produced nothing at all.
const fallbackAnswer = "I don't know."

// Fixed fragments for dispatch failures. A failed specialist degrades to
// one of these lines, never to an error.
const (
	newsOfflineFragment   = "News specialist is offline right now."
	newsNoAnswerFragment  = "The News specialist did not return a summary."
	finOfflineFragment    = "Financial specialist is offline right now."
	finNoAnswerFragment   = "The Financial specialist did not return an analysis."
	policySummaryFragment = "Policy summary:"
)

// Dispatcher sends one task to a named specialist. A nil result covers
// every failure mode; the engine never sees dispatch errors.
type Dispatcher interface {
	Send(ctx context.Context, name, task, sessionID string) *specialist.Task
}

// Directory exposes the read-only registry view the engine needs for policy
// evaluation and name resolution.
type Directory interface {
	NewsName() (string, bool)
	FinanceName() (string, bool)
	Availability() policy.Availability
}

// Engine runs the routing decision pipeline: classify the request, evaluate
// policy against specialist availability, dispatch to the chosen specialist,
// and compose the ordered response fragments.
//
// The engine holds no mutable per-request state; each call builds its own
// pass, so concurrent requests are independent.
type Engine struct {
	directory  Directory
	dispatcher Dispatcher
	sessions   *session.Store
	logger     *zap.Logger
	metrics    *Metrics
}

// New creates a routing engine.
func New(directory Directory, dispatcher Dispatcher, sessions *session.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		directory:  directory,
		dispatcher: dispatcher,
		sessions:   sessions,
		logger:     logger,
		metrics:    sharedMetrics,
	}
}

// pass carries the per-request state between machine steps.
type pass struct {
	text      string
	sessionID string

	fragments []string
	notes     []string

	classification classify.Result
	decision       policy.Decision
}

// HandleUserMessage is the single entry point for external callers. It
// records the user turn, drives the state machine to completion and returns
// the ordered response fragments, substituting the literal fallback when
// the pass produced nothing. Every returned fragment is recorded as an
// assistant turn.
func (e *Engine) HandleUserMessage(ctx context.Context, text, sessionID string) []string {
	e.metrics.messageHandled()
	e.sessions.AppendTurn(sessionID, session.RoleUser, text)

	p := &pass{text: text, sessionID: sessionID}
	for state := StateClassify; state != StateDone; {
		state = e.step(ctx, state, p)
	}

	if len(p.fragments) == 0 {
		e.sessions.AppendTurn(sessionID, session.RoleAssistant, fallbackAnswer)
		return []string{fallbackAnswer}
	}

	for _, fragment := range p.fragments {
		e.sessions.AppendTurn(sessionID, session.RoleAssistant, fragment)
	}
	return p.fragments
}

// step executes one state and returns the next. The topology is fixed; the
// only branch is the action chosen during policy evaluation.
func (e *Engine) step(ctx context.Context, state State, p *pass) State {
	switch state {
	case StateClassify:
		return e.stepClassify(p)
	case StateEvaluatePolicy:
		return e.stepEvaluatePolicy(p)
	case StateDispatchNews:
		return e.stepDispatchNews(ctx, p)
	case StateDispatchFinance:
		return e.stepDispatchFinance(ctx, p)
	case StateCompose:
		return e.stepCompose(p)
	default:
		return StateDone
	}
}

func (e *Engine) stepClassify(p *pass) State {
	p.classification = classify.Classify(p.text)
	if p.classification.Note != "" {
		p.notes = append(p.notes, p.classification.Note)
	}

	if p.classification.Route == classify.RouteFinance {
		p.fragments = append(p.fragments,
			"Policy check: financial intent with ticker(s) "+
				strings.Join(p.classification.Entities, ", ")+
				" → routing to Financial specialist.")
	} else {
		p.fragments = append(p.fragments, "Policy check: routing to News specialist.")
	}

	e.logger.Debug("classified request",
		zap.String("session_id", p.sessionID),
		zap.String("route", string(p.classification.Route)),
		zap.Strings("entities", p.classification.Entities))

	return StateEvaluatePolicy
}

func (e *Engine) stepEvaluatePolicy(p *pass) State {
	p.decision = policy.Evaluate(p.classification, e.directory.Availability())
	p.notes = append(p.notes, p.decision.Notes...)
	if len(p.decision.Notes) > 0 {
		e.metrics.policyFallback()
	}

	e.logger.Info("routing decision",
		zap.String("session_id", p.sessionID),
		zap.String("action", string(p.decision.Action)),
		zap.Strings("fallback_notes", p.decision.Notes))

	switch p.decision.Action {
	case policy.DispatchFinance:
		return StateDispatchFinance
	case policy.DispatchNews:
		return StateDispatchNews
	default:
		// Responding directly: there is no answer to narrate, so the
		// pipeline's own fragments are discarded and the caller falls back
		// to the fixed answer. The notes remain in the log above.
		p.fragments = nil
		return StateCompose
	}
}

func (e *Engine) stepDispatchNews(ctx context.Context, p *pass) State {
	name, ok := e.directory.NewsName()
	if !ok {
		p.fragments = append(p.fragments, newsOfflineFragment)
		e.metrics.dispatch("news", outcomeOffline)
		return StateCompose
	}

	task := e.dispatcher.Send(ctx, name, newsPrompt(p.text), p.sessionID)
	output := specialist.ExtractText(task)
	if output != "" {
		p.fragments = append(p.fragments, strings.TrimSpace(output))
		e.metrics.dispatch("news", outcomeOK)
	} else {
		p.fragments = append(p.fragments, newsNoAnswerFragment)
		e.metrics.dispatch("news", outcomeEmpty)
	}
	return StateCompose
}

func (e *Engine) stepDispatchFinance(ctx context.Context, p *pass) State {
	name, ok := e.directory.FinanceName()
	if !ok {
		p.fragments = append(p.fragments, finOfflineFragment)
		e.metrics.dispatch("finance", outcomeOffline)
		return StateCompose
	}

	task := e.dispatcher.Send(ctx, name, financePrompt(p.text, p.classification.Entities), p.sessionID)
	output := specialist.ExtractText(task)
	if output != "" {
		p.fragments = append(p.fragments, strings.TrimSpace(output))
		e.metrics.dispatch("finance", outcomeOK)
	} else {
		p.fragments = append(p.fragments, finNoAnswerFragment)
		e.metrics.dispatch("finance", outcomeEmpty)
	}
	return StateCompose
}

func (e *Engine) stepCompose(p *pass) State {
	if len(p.notes) > 0 && len(p.fragments) > 0 {
		p.fragments = append(p.fragments, policySummaryFragment)
		for _, note := range p.notes {
			p.fragments = append(p.fragments, "- "+note)
		}
	}
	return StateDone
}

// newsPrompt frames the task for the news specialist.
func newsPrompt(text string) string {
	return "You are the News specialist.\n" +
		"Provide a concise, up-to-date news summary relevant to the user's request. " +
		"If you reference articles, include short citations or source names.\n" +
		"User request:\n" + text
}

// financePrompt frames the task for the finance specialist, naming the
// extracted tickers.
func financePrompt(text string, tickers []string) string {
	tickersText := "N/A"
	if len(tickers) > 0 {
		tickersText = strings.Join(tickers, ", ")
	}
	return "You are the Financial specialist.\n" +
		"Analyze the user's financial question focusing on the specified ticker symbols. " +
		"Prioritize recent results, guidance, valuation context, and material news. " +
		"If data is unknown, respond with 'I don't know'.\n" +
		"Tickers: " + tickersText + "\n" +
		"User request:\n" + text
}
