package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cv-analyzer-backend/internal/analysis"
	"cv-analyzer-backend/internal/llm"
	"cv-analyzer-backend/internal/llm/huggingface"
	"cv-analyzer-backend/internal/shared/config"
	"cv-analyzer-backend/internal/shared/metrics"
	"cv-analyzer-backend/internal/shared/server/middleware"
	"cv-analyzer-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Without credentials the placeholder client fails every generation call,
	// which routes all analyses through the fallback analyzer.
	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(cfg.HFAPIKey) != "" {
		client, err := huggingface.NewClient(
			cfg.HFAPIKey,
			cfg.LLMModel,
			cfg.LLMProvider,
			cfg.LLMBaseURL,
			time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
		)
		if err != nil {
			log.Printf("huggingface client unavailable, analyses will use fallback: %v", err)
		} else {
			llmClient = client
		}
	}

	analysisSvc := &analysis.Service{LLM: llmClient}
	analysisHandler := analysis.NewHandler(analysisSvc, cfg.MaxUploadMB<<20)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "healthy", "message": "CV Analysis API is running"})
	})
	analysisHandler.RegisterRoutes(api)

	if cfg.Env != "production" {
		r.GET("/metrics", metrics.Handler())
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
