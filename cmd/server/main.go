package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/vkaran/murmur/internal/config"
	"github.com/vkaran/murmur/internal/database"
	"github.com/vkaran/murmur/internal/mailer"
	postgresrepo "github.com/vkaran/murmur/internal/repository/postgres"
	"github.com/vkaran/murmur/internal/service"
	"github.com/vkaran/murmur/internal/suggest"
	"github.com/vkaran/murmur/internal/transport/http/handlers"
	"github.com/vkaran/murmur/internal/transport/http/middleware"
	"github.com/vkaran/murmur/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// External collaborators
	resend := mailer.NewResendClient(cfg.ResendAPIKey, cfg.EmailFrom)
	gemini := suggest.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

	// Services
	authService := service.NewAuthService(userRepo, resend, cfg.JWTSecret)
	messageService := service.NewMessageService(userRepo, messageRepo)
	settingsService := service.NewSettingsService(userRepo)
	suggestionService := service.NewSuggestionService(gemini)

	// Live inbox
	hub := ws.NewHub()
	go hub.Run()
	messageService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	messageHandler := handlers.NewMessageHandler(messageService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/sign-up", authHandler.SignUp)
	mux.HandleFunc("POST /api/v1/auth/verify", authHandler.Verify)
	mux.HandleFunc("POST /api/v1/auth/sign-in", authHandler.SignIn)
	mux.HandleFunc("POST /api/v1/messages", messageHandler.Submit)
	mux.HandleFunc("GET /api/v1/messages", messageHandler.List)
	mux.HandleFunc("POST /api/v1/suggest-messages", suggestionHandler.Suggest)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Protected - owner only
	mux.Handle("GET /api/v1/accept-messages", auth(http.HandlerFunc(settingsHandler.GetAcceptMessages)))
	mux.Handle("POST /api/v1/accept-messages", auth(http.HandlerFunc(settingsHandler.UpdateAcceptMessages)))
	mux.Handle("DELETE /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Delete)))

	// CORS
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, corsHandler(mux)))
}
