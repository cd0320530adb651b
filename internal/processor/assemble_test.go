package processor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venusai/venus-services/internal/models"
)

func TestResolveSettings_Defaults(t *testing.T) {
	st := resolveSettings(nil)

	assert.Equal(t, "deepseek/deepseek-r1", st.Model)
	assert.Equal(t, 0.7, st.Temperature)
	assert.Equal(t, 2048, st.MaxTokens)
	assert.Equal(t, defaultSystemPrompt, st.SystemPrompt)
}

func TestResolveSettings_AllProvided(t *testing.T) {
	st := resolveSettings(map[string]interface{}{
		"model":        "deepseek/deepseek-coder",
		"temperature":  1.2,
		"maxTokens":    float64(512),
		"systemPrompt": "Be terse.",
	})

	assert.Equal(t, "deepseek/deepseek-coder", st.Model)
	assert.Equal(t, 1.2, st.Temperature)
	assert.Equal(t, 512, st.MaxTokens)
	assert.Equal(t, "Be terse.", st.SystemPrompt)
}

func TestResolveSettings_PartiallyProvided(t *testing.T) {
	st := resolveSettings(map[string]interface{}{
		"temperature": 0.0,
	})

	// A present zero is used, not replaced by the default.
	assert.Equal(t, 0.0, st.Temperature)
	assert.Equal(t, "deepseek/deepseek-r1", st.Model)
	assert.Equal(t, 2048, st.MaxTokens)
}

func TestBuildContext_UnderLimit(t *testing.T) {
	history := []models.ChatMessage{
		{Role: "user", Content: "q1"},
		{Role: "assistant", Content: "a1"},
	}

	msgs := buildContext(history, "q2")

	require.Len(t, msgs, 3)
	assert.Equal(t, "q1", msgs[0].Content)
	assert.Equal(t, "a1", msgs[1].Content)
	assert.Equal(t, models.ChatMessage{Role: "user", Content: "q2"}, msgs[2])
}

func TestBuildContext_WindowCap(t *testing.T) {
	var history []models.ChatMessage
	for i := 1; i <= 15; i++ {
		history = append(history, models.ChatMessage{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}

	msgs := buildContext(history, "new")

	// Exactly the last 10 in original order, then the new message.
	require.Len(t, msgs, 11)
	assert.Equal(t, "m6", msgs[0].Content)
	assert.Equal(t, "m15", msgs[9].Content)
	assert.Equal(t, "new", msgs[10].Content)
}

func TestBuildContext_EmptyHistory(t *testing.T) {
	msgs := buildContext(nil, "hello")

	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
}
