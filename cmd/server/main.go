package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bizlink/backend/internal/config"
	"github.com/bizlink/backend/internal/handlers"
	appMiddleware "github.com/bizlink/backend/internal/middleware"
	"github.com/bizlink/backend/internal/services"
	"github.com/bizlink/backend/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Firebase Auth (server-side verification of ID tokens and session cookies)
	authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsJSON: cfg.FirebaseCredentialsJSON,
	})
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
	}

	// Document store: Mongo when configured, in-memory for local development.
	var store storage.DocumentStore
	if cfg.MongoURI != "" {
		mongoStore, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoStore.Close(ctx)
		store = mongoStore
	} else {
		log.Printf("Warning: MONGODB_URI not set, using in-memory store")
		store = storage.NewMemoryStore()
	}

	// Local-auth fallback accounts, used when Firebase is unavailable.
	userService, err := services.NewUserService(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	profileService := services.NewProfileService(store)
	connectionService := services.NewConnectionService(store)
	networkService := services.NewNetworkService(profileService, connectionService)
	accountService := services.NewAccountService(profileService, connectionService, authClient)
	recaptcha := services.NewRecaptchaVerifier(cfg.RecaptchaSecret)
	mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFromEmail)

	authHandler := handlers.NewAuthHandler(
		userService, profileService, authClient, recaptcha, mailer,
		cfg.JWTSecret, cfg.JWTExpiration, cfg.SessionExpiration,
	)
	profileHandler := handlers.NewProfileHandler(profileService, networkService)
	networkHandler := handlers.NewNetworkHandler(networkService, connectionService)
	accountHandler := handlers.NewAccountHandler(accountService)
	adminHandler := handlers.NewAdminHandler(profileService, accountService)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/session", authHandler.CreateSession)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.ForgotPassword)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.Auth(authClient, cfg.JWTSecret))

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/profiles/{userId}", profileHandler.GetMemberProfile)

			r.Route("/network", func(r chi.Router) {
				r.Get("/", networkHandler.ListMembers)
				r.Get("/connections", networkHandler.ListConnections)
				r.Get("/status/{userId}", networkHandler.GetStatus)
				r.Post("/connect/{userId}", networkHandler.Connect)
				r.Post("/accept/{userId}", networkHandler.Accept)
				r.Delete("/connect/{userId}", networkHandler.Remove)
			})

			r.Delete("/account", accountHandler.DeleteAccount)

			r.Route("/admin", func(r chi.Router) {
				r.Put("/users/{userId}/role", adminHandler.UpdateRole)
				r.Delete("/users/{userId}", adminHandler.DeleteUser)
			})
		})
	})

	// Serve the web app behind the session guard when a static dir is set.
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			guard := appMiddleware.SessionGuard(authClient)
			r.With(guard).Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
		} else {
			log.Printf("Warning: static dir %s not found, skipping page routes", cfg.StaticDir)
		}
	}

	log.Printf("BizLink API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
