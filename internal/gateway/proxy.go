package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venusai/venus-services/internal/models"
	"github.com/venusai/venus-services/internal/upstream"
	"go.uber.org/zap"
)

const (
	defaultModel       = "deepseek/deepseek-r1"
	defaultTemperature = 0.7
	defaultMaxTokens   = 2048
)

var validRoles = map[string]bool{
	"system":    true,
	"user":      true,
	"assistant": true,
}

// chatCompletions handles the chat completion request: validate,
// build the upstream payload, forward once, relay the reshaped
// response or the mapped error.
func (s *Server) chatCompletions(c *gin.Context) {
	var req models.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	payload, err := s.buildUpstreamRequest(&req)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	// The outbound call carries its own fixed timeout; caller
	// disconnects are not propagated into in-flight requests.
	start := time.Now()
	body, err := s.upstream.CreateChatCompletion(context.Background(), payload)
	processingTime := time.Since(start).Seconds()

	if err != nil {
		s.respondUpstreamError(c, err)
		return
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		s.logger.Error("Failed to decode upstream response", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error: invalid upstream response"})
		return
	}

	// Relay the upstream body verbatim, with the measured duration added.
	result["processing_time"] = processingTime

	s.logger.Info("Chat completion successful",
		zap.String("model", payload.Model),
		zap.Float64("processing_time", processingTime),
		zap.Float64("tokens_used", totalTokens(result)))

	c.JSON(200, result)
}

// buildUpstreamRequest validates the request bounds and folds in the
// defaults and the optional system prompt. Message order is
// preserved: [system prompt if present] + original messages.
func (s *Server) buildUpstreamRequest(req *models.ChatCompletionRequest) (*models.UpstreamChatRequest, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages must not be empty")
	}
	for _, m := range req.Messages {
		if !validRoles[m.Role] {
			return nil, fmt.Errorf("invalid message role: %q", m.Role)
		}
	}

	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
		if temperature < 0.0 || temperature > 2.0 {
			return nil, fmt.Errorf("temperature must be between 0.0 and 2.0")
		}
	}

	maxTokens := defaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
		if maxTokens < 1 || maxTokens > s.cfg.Gateway.MaxTokensPerRequest {
			return nil, fmt.Errorf("max_tokens must be between 1 and %d", s.cfg.Gateway.MaxTokensPerRequest)
		}
	}

	model := req.Model
	if model == "" {
		model = defaultModel
	}

	messages := make([]models.ChatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, models.ChatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, models.ChatMessage{Role: m.Role, Content: m.Content})
	}

	return &models.UpstreamChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      req.Stream,
	}, nil
}

// respondUpstreamError maps a classified upstream failure onto the
// client-facing status.
func (s *Server) respondUpstreamError(c *gin.Context, err error) {
	var statusErr *upstream.StatusError
	switch {
	case errors.As(err, &statusErr):
		c.JSON(statusErr.Code, gin.H{"error": "Upstream API error: " + statusErr.Body})
	case errors.Is(err, upstream.ErrTimeout):
		s.logger.Error("Request timeout to upstream API")
		c.JSON(504, gin.H{"error": "Request timeout"})
	case errors.Is(err, upstream.ErrUnreachable):
		s.logger.Error("Request error to upstream API", zap.Error(err))
		c.JSON(502, gin.H{"error": "Failed to connect to AI service"})
	default:
		s.logger.Error("Unexpected error in chat completion", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
	}
}

// totalTokens digs usage.total_tokens out of the relayed body for
// logging; 0 when absent.
func totalTokens(result map[string]interface{}) float64 {
	usage, ok := result["usage"].(map[string]interface{})
	if !ok {
		return 0
	}
	total, _ := usage["total_tokens"].(float64)
	return total
}
