package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venusai/venus-services/internal/models"
	"github.com/venusai/venus-services/internal/upstream"
	"go.uber.org/zap"
)

const sentimentPrompt = "Analyze the sentiment of the following text and respond with only: positive, negative, or neutral."

// processChat handles one user message: assemble the bounded context
// window, delegate to the AI gateway, persist the exchange in the
// background and answer with the generated reply.
func (s *Server) processChat(c *gin.Context) {
	var req models.ProcessChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	start := time.Now()

	st := resolveSettings(req.ChatSettings)
	messages := buildContext(req.ContextMessages, req.Message)

	s.logger.Info("Calling AI service",
		zap.String("chat_id", req.ChatID),
		zap.String("model", st.Model))

	body, err := s.gateway.CreateChatCompletion(context.Background(), &models.ChatCompletionRequest{
		Messages:     messages,
		Model:        st.Model,
		Temperature:  &st.Temperature,
		MaxTokens:    &st.MaxTokens,
		SystemPrompt: st.SystemPrompt,
		Stream:       false,
	})
	if err != nil {
		s.respondUpstreamError(c, err, req.ChatID)
		return
	}

	var result models.ChatCompletionResult
	if err := json.Unmarshal(body, &result); err != nil {
		s.logger.Error("Failed to decode AI service response",
			zap.Error(err), zap.String("chat_id", req.ChatID))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	if len(result.Choices) == 0 {
		s.logger.Error("AI service response has no choices",
			zap.String("chat_id", req.ChatID))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	aiMessage := result.Choices[0].Message.Content
	tokensUsed := result.Usage.TotalTokens
	processingTime := time.Since(start).Seconds()
	messageID := fmt.Sprintf("msg_%d", time.Now().UnixMilli())

	s.logger.Info("Chat message processed successfully",
		zap.String("chat_id", req.ChatID),
		zap.String("user_id", req.UserID),
		zap.Float64("processing_time", processingTime),
		zap.Int("tokens_used", tokensUsed),
		zap.String("model", st.Model))

	// Fire-and-forget: the response never waits on persistence.
	s.schedulePersist(ExchangeRecord{
		ChatID:         req.ChatID,
		UserID:         req.UserID,
		UserMessage:    req.Message,
		AIResponse:     aiMessage,
		TokensUsed:     tokensUsed,
		Model:          st.Model,
		ProcessingTime: processingTime,
	})

	c.JSON(200, models.ProcessChatResponse{
		ChatID:         req.ChatID,
		MessageID:      messageID,
		AIResponse:     aiMessage,
		ProcessingTime: processingTime,
		TokensUsed:     tokensUsed,
		ModelUsed:      st.Model,
	})
}

// analyzeSentiment classifies free text as positive, negative or
// neutral. Best-effort by contract: any failure degrades to
// "neutral" and the endpoint always answers 200.
func (s *Server) analyzeSentiment(c *gin.Context) {
	sentiment := "neutral"

	if text, err := c.GetRawData(); err == nil && len(text) > 0 {
		if got, err := s.probeSentiment(string(text)); err == nil && got != "" {
			sentiment = got
		}
	}

	c.JSON(200, gin.H{"sentiment": sentiment})
}

// probeSentiment issues a constrained completion for classification.
func (s *Server) probeSentiment(text string) (string, error) {
	temperature := 0.1
	maxTokens := 10

	body, err := s.gateway.CreateChatCompletion(context.Background(), &models.ChatCompletionRequest{
		Messages: []models.ChatMessage{
			{Role: "system", Content: sentimentPrompt},
			{Role: "user", Content: text},
		},
		Model:       "deepseek/deepseek-chat",
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		s.logger.Error("Sentiment analysis error", zap.Error(err))
		return "", err
	}

	var result models.ChatCompletionResult
	if err := json.Unmarshal(body, &result); err != nil {
		s.logger.Error("Sentiment analysis error", zap.Error(err))
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}

	return strings.ToLower(strings.TrimSpace(result.Choices[0].Message.Content)), nil
}

// respondUpstreamError maps a classified gateway failure onto the
// client-facing status. Internal causes never reach the caller.
func (s *Server) respondUpstreamError(c *gin.Context, err error, chatID string) {
	var statusErr *upstream.StatusError
	switch {
	case errors.As(err, &statusErr):
		c.JSON(statusErr.Code, gin.H{"error": "AI service error: " + statusErr.Body})
	case errors.Is(err, upstream.ErrTimeout):
		s.logger.Error("Request timeout", zap.String("chat_id", chatID))
		c.JSON(504, gin.H{"error": "Request timeout"})
	case errors.Is(err, upstream.ErrUnreachable):
		s.logger.Error("Request error", zap.Error(err), zap.String("chat_id", chatID))
		c.JSON(502, gin.H{"error": "Failed to process chat message"})
	default:
		s.logger.Error("Unexpected error in chat processing",
			zap.Error(err), zap.String("chat_id", chatID))
		c.JSON(500, gin.H{"error": "Internal server error"})
	}
}
