// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/launchkit/launchkit/internal/config"
	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/handlers"
	"github.com/launchkit/launchkit/internal/middleware"
	"github.com/launchkit/launchkit/internal/ratelimit"
	"github.com/launchkit/launchkit/internal/repository/flag"
	"github.com/launchkit/launchkit/internal/repository/message"
	"github.com/launchkit/launchkit/internal/repository/note"
	"github.com/launchkit/launchkit/internal/repository/thread"
	"github.com/launchkit/launchkit/internal/repository/user"
	"github.com/launchkit/launchkit/internal/services"
	"github.com/launchkit/launchkit/internal/services/ai"
	"github.com/launchkit/launchkit/internal/services/assistant"
	"github.com/launchkit/launchkit/internal/services/billing"
	"github.com/launchkit/launchkit/internal/services/flags"
	"github.com/launchkit/launchkit/internal/services/mail"
	"github.com/launchkit/launchkit/internal/services/notes"
	"github.com/launchkit/launchkit/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	isProd := strings.ToLower(cfg.Environment) == "production"
	logger := services.NewLogger("launchkit")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Thread{},
		&domain.Message{},
		&domain.Note{},
		&domain.FeatureFlag{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	threadRepo := thread.NewThreadRepository(db)
	messageRepo := message.NewMessageRepository(db)
	noteRepo := note.NewNoteRepository(db)
	flagRepo := flag.NewFlagRepository(db)

	// --- Providers ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	aiConfig.BaseURL = cfg.LLMBaseURL
	aiConfig.ChatModel = cfg.ChatModel
	aiConfig.TitleModel = cfg.TitleModel
	aiProvider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI provider: %v", err)
	}

	var billingProvider billing.Provider
	if cfg.BillingAPIKey != "" {
		billingConfig := billing.DefaultConfig()
		billingConfig.APIKey = cfg.BillingAPIKey
		billingConfig.BaseURL = cfg.BillingBaseURL
		billingProvider, err = billing.NewRESTProvider(billingConfig)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize billing provider: %v", err)
		}
	} else {
		billingProvider = billing.NewLocalProvider(logger)
	}

	var mailProvider mail.Provider
	if cfg.MailAPIKey != "" {
		mailConfig := mail.DefaultConfig()
		mailConfig.APIKey = cfg.MailAPIKey
		mailConfig.BaseURL = cfg.MailBaseURL
		mailConfig.From = cfg.MailFrom
		mailProvider, err = mail.NewRESTProvider(mailConfig)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize mail provider: %v", err)
		}
	} else {
		mailProvider = mail.NewConsoleProvider(logger)
	}

	// --- Services ---
	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, mailProvider, logger)
	userService := user_services.NewUserService(userRepo, logger)

	notesService, err := notes.NewService(noteRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize notes service: %v", err)
	}
	flagsService, err := flags.NewService(flagRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize flags service: %v", err)
	}

	registry, err := assistant.NewRegistry(
		assistant.NewRevenueMetricsTool(billingProvider),
		assistant.NewCreateNoteTool(noteRepo),
		assistant.NewSearchNotesTool(noteRepo),
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to build tool registry: %v", err)
	}

	assistantConfig := assistant.DefaultConfig()
	assistantConfig.ChatModel = cfg.ChatModel
	assistantConfig.TitleModel = cfg.TitleModel
	assistantConfig.MaxToolSteps = cfg.MaxToolSteps
	assistantService, err := assistant.NewService(
		aiProvider, registry, threadRepo, messageRepo, assistantConfig, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize assistant service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, isProd)
	chatHandler := handlers.NewChatHandler(assistantService, logger)
	notesHandler := handlers.NewNotesHandler(notesService)
	flagsHandler := handlers.NewFlagsHandler(flagsService)
	billingHandler := handlers.NewBillingHandler(billingProvider, logger)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(db)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)

	authLimiter := ratelimit.NewMemoryLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	authRoutes := r.PathPrefix("/api/auth").Subrouter()
	authRoutes.Use(middleware.RateLimitMiddleware(authLimiter, "auth"))
	authRoutes.HandleFunc("/register", authHandler.Register).Methods("POST")
	authRoutes.HandleFunc("/login", authHandler.Login).Methods("POST")
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/chat", chatHandler.Chat).Methods("POST")
	api.HandleFunc("/chat", chatHandler.ListThreads).Methods("GET")
	api.HandleFunc("/chat/{id}/messages", chatHandler.ThreadMessages).Methods("GET")
	api.HandleFunc("/chat/{id}", chatHandler.DeleteThread).Methods("DELETE")
	api.HandleFunc("/notes", notesHandler.Create).Methods("POST")
	api.HandleFunc("/notes", notesHandler.List).Methods("GET")
	api.HandleFunc("/notes/{id:[0-9]+}", notesHandler.Delete).Methods("DELETE")
	api.HandleFunc("/flags", flagsHandler.List).Methods("GET")
	api.HandleFunc("/flags/{key}", flagsHandler.Get).Methods("GET")
	api.HandleFunc("/flags/{key}", flagsHandler.Set).Methods("PUT")
	api.HandleFunc("/billing/metrics", billingHandler.Metrics).Methods("GET")
	api.HandleFunc("/me", userHandler.Me).Methods("GET")
	api.HandleFunc("/me", userHandler.UpdateProfile).Methods("PUT")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	})

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	logger.Info("Server starting", "port", port, "environment", cfg.Environment)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
