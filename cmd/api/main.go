package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"draftdeck/internal/config"
	"draftdeck/internal/database"
	"draftdeck/internal/middleware"
	"draftdeck/internal/modules/ai"
	"draftdeck/internal/modules/auth"
	"draftdeck/internal/modules/documents"
	"draftdeck/internal/modules/waitlist"
	"draftdeck/internal/pkg/mailer"
	"draftdeck/internal/pkg/tokens"
	"draftdeck/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "draftdeck.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	userRepo := repository.NewUserRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	chatRepo := repository.NewChatRepository(db)

	tokenManager := tokens.NewManager(tokens.Config{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})

	mail := buildMailer(cfg)

	authService := auth.NewService(userRepo, waitlistRepo, tokenManager, mail, cfg.FrontendURL)
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	authHandler := auth.NewHandler(authService, googleVerifier, cfg)

	docService := documents.NewService(docRepo, chatRepo)
	docHandler := documents.NewHandler(docService)

	waitlistService := waitlist.NewService(waitlistRepo, userRepo, mail, cfg.FrontendURL)
	waitlistHandler := waitlist.NewHandler(waitlistService)

	provider := ai.NewGeminiProvider(cfg.TextProviderURL, cfg.TextProviderKey)
	humanizer := ai.NewHTTPHumanizer(cfg.HumanizerURL, cfg.HumanizerKey)
	aiService := ai.NewService(provider, humanizer, docService, chatRepo)
	aiHandler := ai.NewHandler(aiService, tokenManager)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		waitlistHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(tokenManager))
		{
			authHandler.RegisterProtectedRoutes(protected)
			docHandler.RegisterRoutes(protected)
			aiHandler.RegisterRoutes(v1, protected)
		}

		// admin
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(tokenManager), middleware.RequireAdmin(userRepo))
		{
			waitlistHandler.RegisterAdminRoutes(admin)
		}
	}

	addr := ":" + getEnv("PORT", "8080")
	log.Println("Listening on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func buildMailer(cfg *config.Config) mailer.Mailer {
	if cfg.SMTPHost == "" {
		log.Println("SMTP_HOST not set, emails go to the log")
		return mailer.NewConsoleMailer()
	}
	return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
