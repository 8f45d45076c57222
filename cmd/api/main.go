package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/oseko/lendbook-backend/internal/config"
	"github.com/oseko/lendbook-backend/internal/handler"
	"github.com/oseko/lendbook-backend/internal/middleware"
	"github.com/oseko/lendbook-backend/internal/repository/postgres"
	"github.com/oseko/lendbook-backend/internal/repository/storage"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/oseko/lendbook-backend/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	ledgerStore := postgres.NewLedgerStore(pool)
	ownerRepo := postgres.NewOwnerRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	statementRepo, err := storage.NewS3StatementRepository(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize statement storage")
	}

	// Initialize services
	authService := service.NewAuthService(ownerRepo)
	accountService := service.NewAccountService(accountRepo)
	ledgerService := service.NewLedgerService(ledgerStore)
	transactionService := service.NewTransactionService(transactionRepo)
	loanService := service.NewLoanService(loanRepo, transactionRepo)
	reportService := service.NewReportService(ledgerStore, reportRepo)
	dashboardService := service.NewDashboardService(accountRepo, loanRepo, reportRepo)
	statementService := service.NewStatementService(transactionRepo, statementRepo)

	// WebSocket hub; commits fan out to the owner's connected clients
	hub := websocket.NewHub()
	ledgerService.SetEventPublisher(hub)
	loanService.SetEventPublisher(hub)
	reportService.SetEventPublisher(hub)

	// Create owner provider adapter for auth middleware
	ownerProvider := &ownerProviderAdapter{authService: authService}

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, ownerProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Per-owner rate limiter
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// WebSocket token validation reuses the same Auth0 tenant
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, ownerProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket token validator")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(ledgerService, transactionService)
	loanHandler := handler.NewLoanHandler(loanService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	statementHandler := handler.NewStatementHandler(statementService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// WebSocket endpoint; authenticates via ?token= instead of headers
	e.GET("/ws", wsHandler.HandleWS)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, authHandler, accountHandler, transactionHandler, loanHandler, reportHandler, dashboardHandler, statementHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// ownerProviderAdapter adapts AuthService to middleware.OwnerProvider and
// websocket.OwnerLookup
type ownerProviderAdapter struct {
	authService *service.AuthService
}

// GetOwnerByAuth0ID implements middleware.OwnerProvider
func (a *ownerProviderAdapter) GetOwnerByAuth0ID(auth0ID string) (int32, error) {
	owner, err := a.authService.GetOwnerByAuth0ID(auth0ID)
	if err != nil {
		return 0, err
	}
	return owner.ID, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
