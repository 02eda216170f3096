package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/digest"
	"contract-backend/internal/ingestions"
	"contract-backend/internal/llm"
	"contract-backend/internal/reasoning"
	"contract-backend/internal/review"
	"contract-backend/internal/shared/config"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/server/middleware"
	"contract-backend/internal/shared/server/respond"
	"contract-backend/internal/shared/storage/db"
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
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/contract-reviews/analyze" {
					return "ANALYZE"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 30},
				"ANALYZE": {Rate: 0.5, Burst: 5},
			},
		}),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var ingestionRepo ingestions.Repo
	if sqlDB != nil {
		ingestionRepo = &ingestions.PGRepo{DB: sqlDB}
	} else {
		ingestionRepo = ingestions.NewMemoryRepo()
	}
	ingestionSvc := &ingestions.Service{Repo: ingestionRepo}
	ingestionHandler := ingestions.NewHandler(ingestionSvc)

	var reviewRepo review.Repo
	if sqlDB != nil {
		reviewRepo = &review.PGRepo{DB: sqlDB}
	} else {
		reviewRepo = review.NewMemoryRepo()
	}

	defaultModel := cfg.LLMModel
	if defaultModel == "" {
		defaultModel = cfg.ModelDefault
	}
	provider, err := llm.New(llm.Config{
		Provider:       cfg.LLMProvider,
		Model:          defaultModel,
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.LLMBaseURL,
		TimeoutSeconds: cfg.LLMTimeoutSecs,
	})
	if err != nil {
		log.Printf("LLM provider unavailable, reviews will use the deterministic fallback: %v", err)
		provider = unavailableProvider{err: err}
	}

	reviewSvc := &review.Service{
		Repo:       reviewRepo,
		Ingestions: ingestionRepo,
		Engine:     reasoning.New(provider),
		Digest:     digest.NewService(ingestionRepo),
		Tiers: review.ModelTiers{
			Default:   cfg.ModelDefault,
			Premium:   cfg.ModelPremium,
			Intensive: cfg.ModelIntensive,
		},
	}
	reviewHandler := review.NewHandler(reviewSvc)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	ingestionHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)

	return r
}

// unavailableProvider stands in when no LLM credentials are configured so
// the analysis pipeline degrades to the deterministic fallback.
type unavailableProvider struct {
	err error
}

func (p unavailableProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return nil, &llm.ProviderError{Op: "configure", Err: p.err}
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
