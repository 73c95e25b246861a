package handler

import (
	"mobile-banking-backend/internal/adapter/http/middleware"
	redisStore "mobile-banking-backend/internal/adapter/storage/redis"
	"mobile-banking-backend/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	TransferSvc    ports.TransferService
	ReportingSvc   ports.ReportingService
	AccountSvc     ports.AccountService
	LoanSvc        ports.LoanService
	FeedbackSvc    ports.FeedbackService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", rl("auth_signup"), authHandler.Signup)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	accountHandler := NewAccountHandler(deps.AccountSvc)
	transferHandler := NewTransferHandler(deps.TransferSvc, deps.ReportingSvc)
	loanHandler := NewLoanHandler(deps.LoanSvc)
	feedbackHandler := NewFeedbackHandler(deps.FeedbackSvc)

	accounts := v1.Group("/accounts", jwtAuth)
	{
		accounts.POST("", rl("accounts"), accountHandler.Create)
		accounts.GET("", rl("accounts"), accountHandler.List)
		accounts.GET("/:id/balance", rl("accounts"), accountHandler.GetBalance)
		accounts.GET("/:id/qr", rl("accounts"), accountHandler.UPIQRCode)
	}

	payees := v1.Group("/payees", jwtAuth)
	{
		payees.GET("/random", rl("accounts"), accountHandler.RandomPayee)
		payees.GET("/:number", rl("accounts"), accountHandler.LookupPayee)
	}

	transfers := v1.Group("/transfers", jwtAuth)
	{
		transfers.POST("", rl("transfers"), transferHandler.Transfer)
	}

	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", rl("history"), transferHandler.ListHistory)
		transactions.GET("/:id/billing", rl("history"), transferHandler.GetBilling)
	}

	receives := v1.Group("/receive-requests", jwtAuth)
	{
		receives.POST("", rl("transfers"), accountHandler.CreateReceiveRequest)
	}

	loans := v1.Group("/loans", jwtAuth)
	{
		loans.GET("/instructions", rl("loans"), loanHandler.Instructions)
		loans.GET("/status", rl("loans"), loanHandler.Status)
		loans.POST("", rl("loans"), loanHandler.Apply)
	}

	feedback := v1.Group("/feedback", jwtAuth)
	{
		feedback.POST("", rl("accounts"), feedbackHandler.AddFeedback)
	}

	ratings := v1.Group("/ratings", jwtAuth)
	{
		ratings.POST("", rl("accounts"), feedbackHandler.AddRating)
	}

	return r
}
