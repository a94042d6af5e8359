package specialist

import "encoding/json"

// Wire types for the specialist dispatch protocol: one synchronous JSON-RPC
// exchange per call, posting a user message and receiving either a success
// envelope wrapping a task or an error envelope.

const (
	jsonrpcVersion    = "2.0"
	methodMessageSend = "message/send"

	// taskKind discriminates a task result from any other result shape.
	taskKind = "task"
)

// Part kinds. A part is a tagged variant: exactly one of the payload fields
// is meaningful for a given type.
const (
	PartTypeText = "text"
	PartTypeData = "data"
	PartTypeFile = "file"
)

// Part is one typed unit of message or artifact content.
type Part struct {
	Type string         `json:"type"`
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
	File *FileContent   `json:"file,omitempty"`
}

// TextPart builds a plain-text part.
func TextPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

// FileContent references binary content by MIME type. The bytes themselves
// never travel through the router.
type FileContent struct {
	MimeType string `json:"mimeType"`
	URI      string `json:"uri,omitempty"`
}

// Message is a single conversational message in a dispatch exchange.
type Message struct {
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
	MessageID string `json:"messageId"`
	// ContextID threads successive requests into one specialist-side
	// conversation. Absent on the first exchange of a (session, specialist)
	// pair.
	ContextID string `json:"contextId,omitempty"`
}

// TaskStatus carries the specialist's terminal state and an optional terse
// status message.
type TaskStatus struct {
	State   string   `json:"state"`
	Message *Message `json:"message,omitempty"`
}

// Artifact is one unit of produced output, typically a full report.
type Artifact struct {
	ArtifactID string `json:"artifactId,omitempty"`
	Name       string `json:"name,omitempty"`
	Parts      []Part `json:"parts"`
}

// Task is the structured result of a successful dispatch.
type Task struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// sendRequest is the JSON-RPC envelope for message/send.
type sendRequest struct {
	JSONRPC string     `json:"jsonrpc"`
	ID      string     `json:"id"`
	Method  string     `json:"method"`
	Params  sendParams `json:"params"`
}

type sendParams struct {
	Message Message `json:"message"`
}

// sendResponse is the JSON-RPC envelope for a message/send reply. Result is
// kept raw until the kind discriminator has been checked.
type sendResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
