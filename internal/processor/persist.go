package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// persistTimeout bounds each background save independently of the
// originating request.
const persistTimeout = 10 * time.Second

// ExchangeRecord is one processed user/assistant exchange.
type ExchangeRecord struct {
	ChatID         string  `json:"-"`
	UserID         string  `json:"-"`
	UserMessage    string  `json:"user_message"`
	AIResponse     string  `json:"ai_response"`
	TokensUsed     int     `json:"tokens_used"`
	Model          string  `json:"model"`
	ProcessingTime float64 `json:"processing_time"`
}

// Persister saves a processed exchange. Its failures are observable
// only via logs, never via the HTTP response.
type Persister interface {
	SaveExchange(ctx context.Context, rec ExchangeRecord) error
}

// schedulePersist hands the exchange to the persister on a detached
// context. Best-effort, at-most-once, no retry.
func (s *Server) schedulePersist(rec ExchangeRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := s.persister.SaveExchange(ctx, rec); err != nil {
			s.logger.Error("Failed to save chat message",
				zap.Error(err), zap.String("chat_id", rec.ChatID))
		}
	}()
}

// BackendPersister saves exchanges to the backend store over HTTP.
type BackendPersister struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendPersister creates a persister against the backend store.
func NewBackendPersister(baseURL string, timeout time.Duration) *BackendPersister {
	if timeout == 0 {
		timeout = persistTimeout
	}
	return &BackendPersister{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *BackendPersister) SaveExchange(ctx context.Context, rec ExchangeRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat/%s/messages", p.baseURL, rec.ChatID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend store returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// LogPersister is the stub used when no backend store is configured:
// it records the exchange in the log and nothing else.
type LogPersister struct {
	Logger *zap.Logger
}

func (p LogPersister) SaveExchange(_ context.Context, rec ExchangeRecord) error {
	p.Logger.Info("Saving chat message to database",
		zap.String("chat_id", rec.ChatID),
		zap.String("user_id", rec.UserID),
		zap.Int("tokens_used", rec.TokensUsed),
		zap.String("model", rec.Model))
	return nil
}
