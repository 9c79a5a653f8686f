package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stillpoint/internal/analytics"
	"stillpoint/internal/corpus"
	"stillpoint/internal/db"
	"stillpoint/internal/handlers"
	"stillpoint/internal/insights"
	mw "stillpoint/internal/middleware"
	"stillpoint/internal/search"
	"stillpoint/internal/services"
	"stillpoint/internal/store"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Error("missing required key", slog.String("env", name))
		os.Exit(1)
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		slog.Error("key must be base64", slog.String("env", name), slog.Any("err", err))
		os.Exit(1)
	}
	return key
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to build request logger", slog.Any("err", err))
		os.Exit(1)
	}
	defer zapLogger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	encryptionKey := mustKey("ENCRYPTION_KEY")
	blindIndexKey := mustKey("BLIND_INDEX_KEY")
	port := mustGetenv("PORT", "8080")

	encSvc, err := services.NewEncryptionService(encryptionKey, blindIndexKey)
	if err != nil {
		slog.Error("failed to init encryption", slog.Any("err", err))
		os.Exit(1)
	}

	corpusStore, err := corpus.Load()
	if err != nil {
		slog.Error("failed to load exercise corpus", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("corpus loaded", slog.Int("exercises", corpusStore.Len()))

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		slog.Error("failed to open db", slog.Any("err", err))
		os.Exit(1)
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		slog.Error("failed to ping db", slog.Any("err", err))
		os.Exit(1)
	}
	if err := db.RunMigrations(dbConn); err != nil {
		slog.Error("failed migrations", slog.Any("err", err))
		os.Exit(1)
	}

	st := store.New(dbConn)
	engine := search.New(corpusStore)
	aggregator := analytics.New(st)
	insightSvc := insights.NewService(st, encSvc)

	authHandler := handlers.NewAuthHandler(st, encSvc, []byte(jwtSecret))
	userHandler := handlers.NewUserHandler(st, encSvc)
	journalHandler := handlers.NewJournalHandler(st, encSvc)
	exerciseHandler := handlers.NewExerciseHandler(engine, corpusStore, st)
	analyticsHandler := handlers.NewAnalyticsHandler(aggregator)
	insightHandler := handlers.NewInsightHandler(insightSvc)
	conversationHandler := handlers.NewConversationHandler(st)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.StructuredLogger(zapLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Get("/users/me", userHandler.GetMe)

			pr.Post("/journal", journalHandler.UpsertEntry)
			pr.Get("/journal", journalHandler.List)
			pr.Delete("/journal", journalHandler.Delete)

			pr.Get("/exercises/search", exerciseHandler.Search)
			pr.Get("/exercises/{id}", exerciseHandler.GetByID)
			pr.Post("/exercises/{id}/events", exerciseHandler.AddEvent)

			pr.Get("/analytics/summary", analyticsHandler.Summary)

			pr.Get("/insights", insightHandler.List)
			pr.Post("/insights", insightHandler.Create)
			pr.Get("/insights/{id}", insightHandler.Get)

			pr.Post("/conversations", conversationHandler.Record)
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		slog.Info("server starting", slog.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("err", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	slog.Info("server stopped")
}
