package specialist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/switchd/internal/session"
)

// Default dispatch timeouts. A specialist may take a while to produce a full
// report, so the overall budget is generous; connect failures should surface
// quickly.
const (
	DefaultRequestTimeout = 120 * time.Second
	DefaultConnectTimeout = 30 * time.Second
)

// maxResultSize bounds a dispatch response read.
const maxResultSize = 4 * 1024 * 1024

// Client dispatches tasks to registered specialists over the message/send
// protocol, threading context identifiers per (session, specialist) pair for
// conversational continuity.
//
// Every failure mode (unknown name, transport error, timeout, error
// envelope, non-task result) collapses to a nil Task: dispatch failures are
// request-local, never process-fatal, and never surface as errors to the
// routing engine.
type Client struct {
	registry   *Registry
	sessions   *session.Store
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a dispatch client. Zero timeouts fall back to the
// defaults.
func NewClient(registry *Registry, sessions *session.Store, requestTimeout, connectTimeout time.Duration, logger *zap.Logger) *Client {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		registry: registry,
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		logger: logger,
	}
}

// Send dispatches one task to a named specialist and returns its task
// result, or nil on any failure. Exactly one request goes out per call;
// there is no retry loop. On success the returned context identifier is
// stored for the (session, specialist) pair, overwriting any prior value.
func (c *Client) Send(ctx context.Context, name, task, sessionID string) *Task {
	endpoint, ok := c.registry.Resolve(name)
	if !ok {
		c.logger.Error("unknown specialist requested", zap.String("specialist", name))
		return nil
	}

	messageID := uuid.NewString()
	msg := Message{
		Role:      "user",
		Parts:     []Part{TextPart(task)},
		MessageID: messageID,
	}
	if contextID, ok := c.sessions.ContextID(sessionID, name); ok {
		msg.ContextID = contextID
	}

	req := sendRequest{
		JSONRPC: jsonrpcVersion,
		ID:      messageID,
		Method:  methodMessageSend,
		Params:  sendParams{Message: msg},
	}

	resp, err := c.post(ctx, endpoint, req)
	if err != nil {
		c.logger.Error("dispatch failed",
			zap.String("specialist", name),
			zap.Error(err))
		return nil
	}

	if resp.Error != nil {
		c.logger.Error("received non-success response",
			zap.String("specialist", name),
			zap.Int("code", resp.Error.Code),
			zap.String("message", resp.Error.Message))
		return nil
	}

	var result Task
	if err := json.Unmarshal(resp.Result, &result); err != nil || result.Kind != taskKind {
		c.logger.Error("received non-task result", zap.String("specialist", name))
		return nil
	}

	c.sessions.SetContextID(sessionID, name, result.ContextID)
	return &result
}

// post performs the single HTTP exchange of a dispatch.
func (c *Client) post(ctx context.Context, endpoint string, req sendRequest) (*sendResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResultSize))
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{status: httpResp.StatusCode}
	}

	var resp sendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}
