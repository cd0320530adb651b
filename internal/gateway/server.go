package gateway

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venusai/venus-services/internal/config"
	"github.com/venusai/venus-services/internal/extract"
	"github.com/venusai/venus-services/internal/middleware"
	"github.com/venusai/venus-services/internal/upstream"
	"go.uber.org/zap"
)

const (
	serviceName    = "ai-service"
	serviceVersion = "1.0.0"
)

// Server represents the AI gateway service: it proxies chat
// completions to the upstream provider and hosts the document
// extraction endpoints.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	router    *gin.Engine
	upstream  *upstream.Client
	pdf       extract.Extractor
	docx      extract.Extractor
	csv       extract.Extractor
	startedAt time.Time
}

// New creates a new gateway server instance.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gin.SetMode(cfg.Gateway.Mode)

	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: gin.New(),
		upstream: upstream.New(upstream.Config{
			BaseURL: cfg.Gateway.APIBaseURL,
			APIKey:  cfg.Gateway.APIKey,
			// OpenRouter compatibility headers
			Referer: "http://localhost:5173",
			Title:   "Venus AI",
			Timeout: cfg.Gateway.RequestTimeout(),
		}, logger),
		pdf:       extract.PDFExtractor{},
		docx:      extract.DocxExtractor{},
		csv:       extract.CSVExtractor{},
		startedAt: time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Router returns the gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.AccessLog(s.logger))
	s.router.Use(middleware.CORS(s.cfg.Gateway.CORSOrigins))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/models", s.listModels)

	// Rate-limited work endpoints
	limited := s.router.Group("/")
	limited.Use(middleware.PerIP(s.cfg.Gateway.MaxRequestsPerMinute))
	{
		limited.POST("/chat/completions", s.chatCompletions)
		limited.POST("/extract/pdf", s.extractPDF)
		limited.POST("/extract/docx", s.extractDocx)
		limited.POST("/extract/csv", s.extractCSV)
	}
}
