package models

import "time"

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Chat Completion Request (gateway ingress)
type ChatCompletionRequest struct {
	Messages     []ChatMessage `json:"messages"`
	Model        string        `json:"model"`
	Temperature  *float64      `json:"temperature"`
	MaxTokens    *int          `json:"max_tokens"`
	Stream       bool          `json:"stream"`
	SystemPrompt string        `json:"system_prompt"`
}

// UpstreamChatRequest is the payload forwarded to the provider's
// /chat/completions endpoint after defaults and the system prompt
// have been folded in.
type UpstreamChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// ChatCompletionResult is the typed view of a completion response,
// used where specific fields are needed (the gateway itself relays
// the upstream body verbatim).
type ChatCompletionResult struct {
	ID             string                 `json:"id"`
	Object         string                 `json:"object"`
	Created        int64                  `json:"created"`
	Model          string                 `json:"model"`
	Choices        []ChatCompletionChoice `json:"choices"`
	Usage          Usage                  `json:"usage"`
	ProcessingTime float64                `json:"processing_time"`
}

type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ModelInfo describes one entry of the /models listing.
type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}
