// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and groups routes by
// functionality with the appropriate middleware.
package routes

import (
	"time"

	"aikit/internal/config"
	"aikit/internal/handlers"
	"aikit/internal/middleware"
	"aikit/internal/providers"
	"aikit/internal/repositories"
	"aikit/internal/services/auth"
	"aikit/internal/services/ledger"
	"aikit/internal/services/notification"
	"aikit/internal/services/prompt"
	"aikit/internal/services/tools"
	"aikit/internal/services/topup"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB)
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	ledgerRepo := repositories.NewLedgerRepository(repositories.DB)
	topupRepo := repositories.NewTopupRepository(repositories.DB)
	packageRepo := repositories.NewPackageRepository(repositories.DB)
	notificationRepo := repositories.NewNotificationRepository(repositories.DB)
	promptRepo := repositories.NewPromptRepository(repositories.DB)

	// Services
	authService := auth.NewService(userRepo)

	ledgerService := ledger.NewService(
		ledgerRepo,
		walletRepo,
		repositories.CacheService,
		ledger.LedgerConfig{
			MonthlyQuota: config.GetIntEnv("MONTHLY_FREE_CREDITS", ledger.DefaultMonthlyQuota),
			ToolCosts: map[string]int{
				tools.ToolSummarize:         config.GetIntEnv("COST_SUMMARIZE", 3),
				tools.ToolRedesignPrompt:    config.GetIntEnv("COST_REDESIGN_PROMPT", 2),
				tools.ToolTranscribeYouTube: config.GetIntEnv("COST_TRANSCRIBE_YOUTUBE", 25),
				tools.ToolImageToVideo:      config.GetIntEnv("COST_IMAGE_TO_VIDEO", 40),
			},
			EntryPackCode: config.GetEnv("ENTRY_PACK_CODE", ledger.DefaultEntryPackCode),
		},
		&ledger.NoopMetricsCollector{},
	)

	topupService := topup.NewService(topupRepo, packageRepo, walletRepo, repositories.CacheService)
	notificationService := notification.NewService(notificationRepo, userRepo)
	promptService := prompt.NewService(promptRepo)

	// AI provider clients
	textClient := providers.NewTextClient(
		config.GetListEnv("GEMINI_API_KEYS"),
		config.GetEnv("GEMINI_MODEL", ""),
	)
	transcribeClient := providers.NewTranscribeClient(providers.TranscribeConfig{
		BaseURL: config.GetEnv("TRANSCRIBE_API_URL", ""),
		Keys:    config.GetListEnv("TRANSCRIBE_API_KEYS"),
	})
	framesClient := providers.NewFramesClient(providers.FramesConfig{
		BaseURL: config.GetEnv("FRAMES_API_URL", ""),
		Keys:    config.GetListEnv("FRAMES_API_KEYS"),
	})

	toolsService := tools.NewService(ledgerService, promptRepo, textClient, transcribeClient, framesClient)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	creditsHandler := handlers.NewCreditsHandler(ledgerService, packageRepo)
	topupHandler := handlers.NewTopupHandler(topupService)
	toolsHandler := handlers.NewToolsHandler(toolsService)
	notificationsHandler := handlers.NewNotificationsHandler(notificationService)
	promptsHandler := handlers.NewPromptsHandler(promptService)
	adminHandler := handlers.NewAdminHandler(
		topupService,
		notificationService,
		ledgerService,
		userRepo,
		ledgerRepo,
	)

	// Middleware
	protected := middleware.Protected(authService)
	adminChecker := middleware.NewAdminChecker(config.GetListEnv("ADMIN_EMAILS"))

	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	})

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Auth
	api.Post("/register", authLimiter, authHandler.Register)
	api.Post("/login", authLimiter, authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)
	api.Post("/logout", protected, authHandler.Logout)
	api.Post("/change-password", protected, authHandler.ChangePassword)

	// Credits
	api.Get("/credits/packages", creditsHandler.Packages)
	credits := api.Group("/credits", protected)
	credits.Get("/summary", creditsHandler.Summary)
	credits.Post("/topup", topupHandler.Submit)
	credits.Get("/topup", topupHandler.ListMine)

	// AI tools
	toolsGroup := api.Group("/tools", protected)
	toolsGroup.Post("/summarize", toolsHandler.Summarize)
	toolsGroup.Post("/redesign-prompt", toolsHandler.RedesignPrompt)
	toolsGroup.Post("/transcribe/youtube", toolsHandler.TranscribeYouTube)
	toolsGroup.Get("/image-to-video/:jobID/status", toolsHandler.ImageToVideoStatus)

	// Notifications
	notifications := api.Group("/notifications", protected)
	notifications.Get("/", notificationsHandler.Inbox)
	notifications.Patch("/:id", notificationsHandler.MarkRead)

	// Prompt templates (read side is available to any authenticated user)
	api.Get("/prompts", protected, promptsHandler.List)

	// Admin back office
	admin := api.Group("/admin", protected, adminChecker.RequireAdmin())
	admin.Get("/me", adminHandler.Me)
	admin.Get("/topups", adminHandler.ListTopups)
	admin.Patch("/topups/:id", adminHandler.DecideTopup)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.UserDetail)
	admin.Get("/notifications", adminHandler.ListBroadcasts)
	admin.Post("/notifications", adminHandler.Broadcast)
	admin.Patch("/notifications/:id", adminHandler.UpdateBroadcast)
	admin.Get("/prompts", promptsHandler.List)
	admin.Post("/prompts", promptsHandler.Create)
	admin.Patch("/prompts/:id", promptsHandler.Update)
}
