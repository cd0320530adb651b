package processor

import (
	"github.com/venusai/venus-services/internal/models"
)

// maxContextMessages bounds the conversation history forwarded with
// each request.
const maxContextMessages = 10

const (
	defaultModel        = "deepseek/deepseek-r1"
	defaultTemperature  = 0.7
	defaultMaxTokens    = 2048
	defaultSystemPrompt = "You are Venus AI, a helpful and intelligent assistant."
)

// chatSettings are the per-chat generation settings after defaults
// have been applied.
type chatSettings struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// resolveSettings reads the request's settings mapping, substituting
// the documented defaults for absent keys. Present values are used
// unmodified.
func resolveSettings(m map[string]interface{}) chatSettings {
	st := chatSettings{
		Model:        defaultModel,
		Temperature:  defaultTemperature,
		MaxTokens:    defaultMaxTokens,
		SystemPrompt: defaultSystemPrompt,
	}

	if v, ok := m["model"].(string); ok {
		st.Model = v
	}
	if v, ok := m["temperature"].(float64); ok {
		st.Temperature = v
	}
	// JSON numbers decode as float64
	if v, ok := m["maxTokens"].(float64); ok {
		st.MaxTokens = int(v)
	}
	if v, ok := m["systemPrompt"].(string); ok {
		st.SystemPrompt = v
	}

	return st
}

// buildContext takes at most the last maxContextMessages entries of
// the supplied history, preserving order, and appends the new user
// message as the final entry.
func buildContext(history []models.ChatMessage, userMessage string) []models.ChatMessage {
	start := 0
	if len(history) > maxContextMessages {
		start = len(history) - maxContextMessages
	}

	msgs := make([]models.ChatMessage, 0, len(history)-start+1)
	for _, m := range history[start:] {
		msgs = append(msgs, models.ChatMessage{Role: m.Role, Content: m.Content})
	}

	return append(msgs, models.ChatMessage{Role: "user", Content: userMessage})
}
