package processor

import (
	"github.com/gin-gonic/gin"
	"github.com/venusai/venus-services/internal/config"
	"github.com/venusai/venus-services/internal/middleware"
	"github.com/venusai/venus-services/internal/upstream"
	"go.uber.org/zap"
)

const (
	serviceName    = "chat-processor"
	serviceVersion = "1.0.0"
)

// Server represents the chat processor service: it assembles
// conversation context, delegates generation to the AI gateway and
// triggers the persistence side-effect.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	router    *gin.Engine
	gateway   *upstream.Client
	persister Persister
}

// New creates a new processor server instance.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gin.SetMode(cfg.Processor.Mode)

	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: gin.New(),
		gateway: upstream.New(upstream.Config{
			BaseURL: cfg.Processor.AIServiceURL,
			Timeout: cfg.Processor.RequestTimeout(),
		}, logger),
	}

	if cfg.Processor.BackendServiceURL != "" {
		s.persister = NewBackendPersister(cfg.Processor.BackendServiceURL, cfg.Processor.RequestTimeout())
	} else {
		// No backend store configured: exchanges are logged only.
		s.persister = LogPersister{Logger: logger}
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
	s.router.Use(middleware.CORS(s.cfg.Processor.CORSOrigins))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	limited := s.router.Group("/")
	limited.Use(middleware.MaxInFlight(s.cfg.Processor.MaxConcurrentRequests))
	{
		limited.POST("/process-chat", s.processChat)
		limited.POST("/analyze-sentiment", s.analyzeSentiment)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}
