package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venusai/venus-services/internal/config"
	"github.com/venusai/venus-services/internal/extract"
	"github.com/venusai/venus-services/internal/models"
	"github.com/venusai/venus-services/internal/upstream"
	"go.uber.org/zap"
)

func newTestServer(upstreamURL string, timeout time.Duration) *Server {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Gateway: config.GatewayConfig{
			APIBaseURL:          upstreamURL,
			APIKey:              "test-key",
			MaxTokensPerRequest: 8192,
		},
	}

	s := &Server{
		cfg:    cfg,
		logger: zap.NewNop(),
		router: gin.New(),
		upstream: upstream.New(upstream.Config{
			BaseURL: upstreamURL,
			APIKey:  "test-key",
			Timeout: timeout,
		}, zap.NewNop()),
		pdf:       extract.PDFExtractor{},
		docx:      extract.DocxExtractor{},
		csv:       extract.CSVExtractor{},
		startedAt: time.Now(),
	}
	s.setupRoutes()

	return s
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestChatCompletions_Success(t *testing.T) {
	var gotPayload models.UpstreamChatRequest
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-42","object":"chat.completion","created":1700000000,"model":"deepseek/deepseek-r1","choices":[{"index":0,"message":{"role":"assistant","content":"Hi there"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":4,"total_tokens":7}}`))
	}))
	defer mock.Close()

	s := newTestServer(mock.URL, time.Second)
	w := doJSON(s, "POST", "/chat/completions", `{"messages":[{"role":"user","content":"Hello"}]}`)

	require.Equal(t, 200, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Upstream body relayed verbatim plus processing_time >= 0.
	assert.Equal(t, "chatcmpl-42", resp["id"])
	assert.Equal(t, "chat.completion", resp["object"])
	pt, ok := resp["processing_time"].(float64)
	require.True(t, ok, "processing_time missing")
	assert.GreaterOrEqual(t, pt, 0.0)

	// Defaults applied to the forwarded payload.
	assert.Equal(t, "deepseek/deepseek-r1", gotPayload.Model)
	assert.Equal(t, 0.7, gotPayload.Temperature)
	assert.Equal(t, 2048, gotPayload.MaxTokens)
	assert.False(t, gotPayload.Stream)
}

func TestChatCompletions_MessageOrder(t *testing.T) {
	var gotPayload models.UpstreamChatRequest
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"choices":[],"usage":{}}`))
	}))
	defer mock.Close()

	s := newTestServer(mock.URL, time.Second)
	w := doJSON(s, "POST", "/chat/completions", `{
		"system_prompt": "Be brief",
		"messages": [
			{"role": "user", "content": "one"},
			{"role": "assistant", "content": "two"},
			{"role": "user", "content": "three"}
		]
	}`)

	require.Equal(t, 200, w.Code)
	require.Len(t, gotPayload.Messages, 4)
	assert.Equal(t, "system", gotPayload.Messages[0].Role)
	assert.Equal(t, "Be brief", gotPayload.Messages[0].Content)
	assert.Equal(t, "one", gotPayload.Messages[1].Content)
	assert.Equal(t, "two", gotPayload.Messages[2].Content)
	assert.Equal(t, "three", gotPayload.Messages[3].Content)
}

func TestChatCompletions_Validation(t *testing.T) {
	upstreamCalled := false
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
		w.Write([]byte(`{}`))
	}))
	defer mock.Close()

	s := newTestServer(mock.URL, time.Second)

	tests := []struct {
		name string
		body string
	}{
		{"empty messages", `{"messages":[]}`},
		{"bad role", `{"messages":[{"role":"robot","content":"hi"}]}`},
		{"temperature too high", `{"messages":[{"role":"user","content":"hi"}],"temperature":2.5}`},
		{"temperature negative", `{"messages":[{"role":"user","content":"hi"}],"temperature":-0.1}`},
		{"max_tokens zero", `{"messages":[{"role":"user","content":"hi"}],"max_tokens":0}`},
		{"max_tokens over cap", `{"messages":[{"role":"user","content":"hi"}],"max_tokens":9000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(s, "POST", "/chat/completions", tt.body)
			assert.Equal(t, 400, w.Code)
		})
	}

	assert.False(t, upstreamCalled, "validation failures must not reach the upstream")
}

func TestChatCompletions_UpstreamRejected(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer mock.Close()

	s := newTestServer(mock.URL, time.Second)
	w := doJSON(s, "POST", "/chat/completions", `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, 429, w.Code)
	assert.Contains(t, w.Body.String(), "rate limited")
}

func TestChatCompletions_UpstreamTimeout(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer mock.Close()

	s := newTestServer(mock.URL, 50*time.Millisecond)
	w := doJSON(s, "POST", "/chat/completions", `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, 504, w.Code)
}

func TestChatCompletions_UpstreamUnreachable(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	mock.Close()

	s := newTestServer(mock.URL, time.Second)
	w := doJSON(s, "POST", "/chat/completions", `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, 502, w.Code)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer("http://localhost:0", time.Second)
	w := doJSON(s, "GET", "/health", "")

	require.Equal(t, 200, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, serviceName, resp["service"])
	assert.GreaterOrEqual(t, resp["uptime"].(float64), 0.0)
}

func TestListModels(t *testing.T) {
	s := newTestServer("http://localhost:0", time.Second)
	w := doJSON(s, "GET", "/models", "")

	require.Equal(t, 200, w.Code)

	var resp struct {
		Data []models.ModelInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "deepseek/deepseek-r1", resp.Data[0].ID)
}
