package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/config"
	"github.com/sahilchouksey/health-platform-api/database"
	auth_handlers "github.com/sahilchouksey/health-platform-api/handlers/auth"
	chat_handlers "github.com/sahilchouksey/health-platform-api/handlers/chat"
	dashboard_handlers "github.com/sahilchouksey/health-platform-api/handlers/dashboard"
	detection_handlers "github.com/sahilchouksey/health-platform-api/handlers/detection"
	healthlog_handlers "github.com/sahilchouksey/health-platform-api/handlers/healthlog"
	medication_handlers "github.com/sahilchouksey/health-platform-api/handlers/medication"
	profile_handlers "github.com/sahilchouksey/health-platform-api/handlers/profile"
	report_handlers "github.com/sahilchouksey/health-platform-api/handlers/report"
	"github.com/sahilchouksey/health-platform-api/services/llm"
	"github.com/sahilchouksey/health-platform-api/services/mlserver"
	"github.com/sahilchouksey/health-platform-api/services/report"
	"github.com/sahilchouksey/health-platform-api/services/storage"
	"github.com/sahilchouksey/health-platform-api/utils/auth"
	"github.com/sahilchouksey/health-platform-api/utils/cache"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	env, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "health-platform-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        env.JWT_SECRET,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Auth middleware checks the blacklist through the DB
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Object store for scan images, report photos, and profile pictures
	storageClient, err := storage.NewClient(storage.Config{
		AccessKey: env.SPACES_ACCESS_KEY,
		SecretKey: env.SPACES_SECRET_KEY,
		Bucket:    env.SPACES_BUCKET,
		Region:    env.SPACES_REGION,
		Endpoint:  env.SPACES_ENDPOINT,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// CT scan classifier
	classifier := mlserver.NewClient(mlserver.Config{
		BaseURL: env.ML_SERVER_URL,
	})

	// LLM dispatcher over the configured providers
	dispatcher := llm.NewDispatcher(
		llm.NewGeminiClient(llm.GeminiConfig{
			APIKey: env.GEMINI_API_KEY,
			Model:  env.GEMINI_MODEL,
		}),
		llm.NewNvidiaClient(llm.NvidiaConfig{
			APIKey:  env.NVIDIA_API_KEY,
			BaseURL: env.NVIDIA_BASE_URL,
			Model:   env.NVIDIA_MODEL,
		}),
		llm.NewOllamaClient(llm.OllamaConfig{
			BaseURL: env.OLLAMA_BASE_URL,
			Model:   env.OLLAMA_MODEL,
		}),
	)

	simplifier := report.NewSimplifier(dispatcher)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	profileHandler := profile_handlers.NewProfileHandler(db, storageClient)
	detectionHandler := detection_handlers.NewDetectionHandler(db, classifier, storageClient, dispatcher)
	chatHandler := chat_handlers.NewChatHandler(db, dispatcher)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db, dispatcher)
	healthLogHandler := healthlog_handlers.NewHealthLogHandler(db)
	medicationHandler := medication_handlers.NewMedicationHandler(db)
	reportHandler := report_handlers.NewReportHandler(db, simplifier, storageClient)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public, reports whether the caller is signed in)
	app.Get("/ping", authMiddleware.Optional(), func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.ServiceUnavailable(c, "Database unavailable")
		}
		_, authenticated := middleware.GetUserID(c)
		return response.Success(c, fiber.Map{
			"status":        "ok",
			"authenticated": authenticated,
		})
	})

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password/:token", authHandler.ResetPassword)
	authGroup.Get("/verify-email/:token", authHandler.VerifyEmail)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)
	authGroup.Post("/update-password", authMiddleware.Required(), authHandler.UpdatePassword)
	authGroup.Post("/resend-verification", authMiddleware.Required(), authHandler.ResendVerification)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Post("/", profileHandler.Create)
	profileGroup.Get("/", profileHandler.Get)
	profileGroup.Put("/", profileHandler.Update)
	profileGroup.Post("/picture", profileHandler.UploadPicture)
	profileGroup.Get("/medical-history", profileHandler.GetMedicalHistory)
	profileGroup.Put("/medical-history", profileHandler.UpsertMedicalHistory)

	// Detection routes (protected)
	detectionGroup := api.Group("/detection", authMiddleware.Required())
	detectionGroup.Post("/upload", detectionHandler.Upload)
	detectionGroup.Get("/history", detectionHandler.History)
	detectionGroup.Get("/previous-images", detectionHandler.PreviousImages)
	detectionGroup.Get("/:id", detectionHandler.Get)
	detectionGroup.Put("/:id/notes", detectionHandler.UpdateNotes)

	// Chat routes (protected)
	chatGroup := api.Group("/chat", authMiddleware.Required())
	chatGroup.Post("/message", chatHandler.SendMessage)
	chatGroup.Get("/history", chatHandler.GetHistory)
	chatGroup.Delete("/history", chatHandler.ClearHistory)

	// Dashboard routes (protected)
	dashboardGroup := api.Group("/dashboard", authMiddleware.Required())
	dashboardGroup.Get("/", dashboardHandler.Get)
	dashboardGroup.Get("/risk-score", dashboardHandler.RiskScore)
	dashboardGroup.Get("/trends", dashboardHandler.Trends)

	// Health log routes (protected)
	healthLogGroup := api.Group("/health-logs", authMiddleware.Required())
	healthLogGroup.Post("/", healthLogHandler.Create)
	healthLogGroup.Get("/", healthLogHandler.List)
	healthLogGroup.Get("/latest", healthLogHandler.Latest)

	// Medication routes (protected)
	medicationGroup := api.Group("/medications", authMiddleware.Required())
	medicationGroup.Post("/", medicationHandler.Create)
	medicationGroup.Get("/", medicationHandler.List)
	medicationGroup.Put("/:id", medicationHandler.Update)
	medicationGroup.Delete("/:id", medicationHandler.Delete)

	// Report simplifier routes (protected)
	reportGroup := api.Group("/report-simplifier", authMiddleware.Required())
	reportGroup.Post("/upload", reportHandler.Upload)
	reportGroup.Get("/history", reportHandler.History)
	reportGroup.Get("/:id", reportHandler.Get)
	reportGroup.Delete("/:id", reportHandler.Delete)
}
