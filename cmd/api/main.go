package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/taskvault/taskvault-go/internal/config"
	"github.com/taskvault/taskvault-go/internal/crypto"
	"github.com/taskvault/taskvault-go/internal/handler"
	"github.com/taskvault/taskvault-go/internal/middleware"
	"github.com/taskvault/taskvault-go/internal/repository"
	"github.com/taskvault/taskvault-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	tokens := crypto.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, tokens)
	authHandler := handler.NewAuthHandler(authService)

	todoRepo := repository.NewTodoRepository(db)
	todoService := service.NewTodoService(todoRepo)
	todoHandler := handler.NewTodoHandler(todoService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/user/register", authHandler.HandleRegister)
		r.Post("/api/v1/user/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))
		r.Get("/api/v1/user/profile", authHandler.HandleProfile)

		r.Post("/api/v1/todos", todoHandler.HandleCreateList)
		r.Get("/api/v1/todos", todoHandler.HandleListLists)
		r.Post("/api/v1/todos/batch", todoHandler.HandleCreateManyLists)
		r.Put("/api/v1/todos/batch", todoHandler.HandleUpdateManyLists)
		r.Delete("/api/v1/todos/batch", todoHandler.HandleDeleteManyLists)
		r.Get("/api/v1/todos/{todo_id}", todoHandler.HandleGetList)
		r.Put("/api/v1/todos/{todo_id}", todoHandler.HandleUpdateList)
		r.Delete("/api/v1/todos/{todo_id}", todoHandler.HandleDeleteList)

		r.Get("/api/v1/todos/{todo_id}/items", todoHandler.HandleListItems)
		r.Post("/api/v1/todos/{todo_id}/items", todoHandler.HandleCreateItem)
		r.Post("/api/v1/todos/{todo_id}/items/batch", todoHandler.HandleCreateManyItems)
		r.Put("/api/v1/todos/{todo_id}/items/batch", todoHandler.HandleUpdateManyItems)
		r.Delete("/api/v1/todos/{todo_id}/items/batch", todoHandler.HandleDeleteManyItems)
		r.Put("/api/v1/todos/{todo_id}/items/{item_id}", todoHandler.HandleUpdateItem)
		r.Delete("/api/v1/todos/{todo_id}/items/{item_id}", todoHandler.HandleDeleteItem)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
