package specialist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/switchd/internal/session"
)

// specialistStub records incoming message/send requests and replies with a
// canned task result.
type specialistStub struct {
	t        *testing.T
	server   *httptest.Server
	received []sendRequest
	reply    func(req sendRequest) any
}

func newSpecialistStub(t *testing.T, reply func(req sendRequest) any) *specialistStub {
	t.Helper()
	s := &specialistStub{t: t, reply: reply}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		s.received = append(s.received, req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.reply(req))
	}))
	t.Cleanup(s.server.Close)
	return s
}

func taskReply(contextID string) func(req sendRequest) any {
	return func(req sendRequest) any {
		return map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]any{
				"id":        "task-1",
				"kind":      "task",
				"contextId": contextID,
				"status": map[string]any{
					"state": "completed",
					"message": map[string]any{
						"role":  "agent",
						"parts": []map[string]any{{"type": "text", "text": "done"}},
					},
				},
			},
		}
	}
}

func newTestClient(t *testing.T, stub *specialistStub) (*Client, *session.Store) {
	t.Helper()
	registry := NewRegistry(nil)
	registry.Register(newsCard(), stub.server.URL)
	sessions := session.NewStore()
	return NewClient(registry, sessions, 0, 0, nil), sessions
}

func TestClient_SendSuccess(t *testing.T) {
	stub := newSpecialistStub(t, taskReply("ctx-1"))
	client, sessions := newTestClient(t, stub)

	task := client.Send(context.Background(), "News Agent", "summarize the day", "sess-1")

	require.NotNil(t, task)
	assert.Equal(t, "ctx-1", task.ContextID)
	assert.Equal(t, "done", task.Status.Message.Parts[0].Text)

	// The context identifier is stored for the pair.
	id, ok := sessions.ContextID("sess-1", "News Agent")
	require.True(t, ok)
	assert.Equal(t, "ctx-1", id)

	// Request shape: role user, single text part, fresh message id, no
	// context id on the first exchange.
	require.Len(t, stub.received, 1)
	msg := stub.received[0].Params.Message
	assert.Equal(t, "user", msg.Role)
	require.Len(t, msg.Parts, 1)
	assert.Equal(t, "summarize the day", msg.Parts[0].Text)
	assert.NotEmpty(t, msg.MessageID)
	assert.Empty(t, msg.ContextID)
	assert.Equal(t, methodMessageSend, stub.received[0].Method)
}

func TestClient_SendReusesContextID(t *testing.T) {
	stub := newSpecialistStub(t, taskReply("ctx-2"))
	client, _ := newTestClient(t, stub)

	first := client.Send(context.Background(), "News Agent", "first", "sess-1")
	require.NotNil(t, first)
	second := client.Send(context.Background(), "News Agent", "second", "sess-1")
	require.NotNil(t, second)

	require.Len(t, stub.received, 2)
	assert.Empty(t, stub.received[0].Params.Message.ContextID)
	assert.Equal(t, "ctx-2", stub.received[1].Params.Message.ContextID)

	// Message ids are unique per call.
	assert.NotEqual(t,
		stub.received[0].Params.Message.MessageID,
		stub.received[1].Params.Message.MessageID)
}

func TestClient_SendUnknownSpecialist(t *testing.T) {
	registry := NewRegistry(nil)
	client := NewClient(registry, session.NewStore(), 0, 0, nil)

	assert.Nil(t, client.Send(context.Background(), "Nobody", "task", "sess-1"))
}

func TestClient_SendErrorEnvelope(t *testing.T) {
	stub := newSpecialistStub(t, func(req sendRequest) any {
		return map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]any{"code": -32000, "message": "boom"},
		}
	})
	client, sessions := newTestClient(t, stub)

	assert.Nil(t, client.Send(context.Background(), "News Agent", "task", "sess-1"))
	_, ok := sessions.ContextID("sess-1", "News Agent")
	assert.False(t, ok)
}

func TestClient_SendNonTaskResult(t *testing.T) {
	stub := newSpecialistStub(t, func(req sendRequest) any {
		return map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]any{"kind": "message", "text": "not a task"},
		}
	})
	client, sessions := newTestClient(t, stub)

	assert.Nil(t, client.Send(context.Background(), "News Agent", "task", "sess-1"))
	_, ok := sessions.ContextID("sess-1", "News Agent")
	assert.False(t, ok)
}

func TestClient_SendTransportError(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register(newsCard(), "http://127.0.0.1:1")
	client := NewClient(registry, session.NewStore(), 0, 0, nil)

	assert.Nil(t, client.Send(context.Background(), "News Agent", "task", "sess-1"))
}

func TestClient_SendHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	registry := NewRegistry(nil)
	registry.Register(newsCard(), srv.URL)
	client := NewClient(registry, session.NewStore(), 0, 0, nil)

	assert.Nil(t, client.Send(context.Background(), "News Agent", "task", "sess-1"))
}
