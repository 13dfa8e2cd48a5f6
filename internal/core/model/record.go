package model

// Record type and payload type discriminants used by Codex session logs.
const (
	RecordTypeEvent    = "event_msg"
	PayloadTokenCount  = "token_count"
	PayloadUserMessage = "user_message"
)

// DefaultWindowCapacity is assumed when a token_count record carries no
// model_context_window field.
const DefaultWindowCapacity = 272000

// SessionRecord is one line of a session transcript as written to disk.
type SessionRecord struct {
	Timestamp string        `json:"timestamp"`
	Type      string        `json:"type"`
	Payload   *EventPayload `json:"payload,omitempty"`
}

// EventPayload is the type-specific body of an event_msg record. Message is
// set for user_message payloads, Info for token_count payloads.
type EventPayload struct {
	Type    string     `json:"type"`
	Message string     `json:"message,omitempty"`
	Info    *TokenInfo `json:"info,omitempty"`
}

type TokenInfo struct {
	TotalTokenUsage    TokenUsage `json:"total_token_usage"`
	LastTokenUsage     TokenUsage `json:"last_token_usage"`
	ModelContextWindow int        `json:"model_context_window,omitempty"`
}

type TokenUsage struct {
	InputTokens           int `json:"input_tokens"`
	CachedInputTokens     int `json:"cached_input_tokens"`
	OutputTokens          int `json:"output_tokens"`
	ReasoningOutputTokens int `json:"reasoning_output_tokens"`
	TotalTokens           int `json:"total_tokens"`
}
