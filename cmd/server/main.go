package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/contacthub/contacthub-backend/internal/config"
	"github.com/contacthub/contacthub-backend/internal/database"
	"github.com/contacthub/contacthub-backend/internal/handlers"
	"github.com/contacthub/contacthub-backend/internal/middleware"
	"github.com/contacthub/contacthub-backend/internal/routes"
	"github.com/contacthub/contacthub-backend/internal/services"
	"github.com/contacthub/contacthub-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Environment)

	client, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer database.Disconnect(client)
	log.Info().Str("database", db.Name()).Msg("connected to MongoDB")

	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	users := services.NewUserStore(db)
	contacts := services.NewContactStore(db, users)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndexes()
	if err := users.EnsureIndexes(indexCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := contacts.EnsureIndexes(indexCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure contact indexes")
	}

	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if !mailer.Configured() {
		log.Warn().Msg("SMTP not configured, password reset emails will fail")
	}

	var cloud *services.CloudinaryService
	if cfg.CloudinaryName != "" {
		cloud, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Cloudinary")
		}
	} else {
		log.Warn().Msg("Cloudinary not configured, image uploads are disabled")
	}

	auth := services.NewAuthService(users, mailer, cfg.JWTSecret, cfg.FrontendURL)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))

	health := handlers.NewHealthHandler(cfg.Environment)
	r.Get("/health", health.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rdb))
		routes.Setup(r, routes.Deps{
			Users:     users,
			Contacts:  contacts,
			Auth:      auth,
			Cloud:     cloud,
			JWTSecret: cfg.JWTSecret,
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
