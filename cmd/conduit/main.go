package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/shif-works/conduit/pkg/article"
	"github.com/shif-works/conduit/pkg/config"
	"github.com/shif-works/conduit/pkg/database"
	"github.com/shif-works/conduit/pkg/login"
	"github.com/shif-works/conduit/pkg/password"
	"github.com/shif-works/conduit/pkg/token"
	"github.com/shif-works/conduit/pkg/upload"
	"github.com/shif-works/conduit/pkg/user"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var userRepo user.Repository
	var articleRepo article.Repository
	switch cfg.Server.Storage {
	case "memory":
		slog.Warn("Using in-memory storage, data is lost on restart")
		userRepo = user.NewInMemoryRepository()
		articleRepo = article.NewInMemoryRepository()
	default:
		pool, err := database.NewPool(ctx, cfg.Db.DatabaseURL())
		if err != nil {
			slog.Error("Failed to connect to database", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := database.Migrate(pool, "migrations"); err != nil {
			slog.Error("Failed to run migrations", "err", err)
			os.Exit(1)
		}
		userRepo = user.NewPostgresRepository(pool)
		articleRepo = article.NewPostgresRepository(pool)
	}

	tokenExpiry, err := time.ParseDuration(cfg.Jwt.TokenExpiry)
	if err != nil {
		slog.Warn("Invalid TOKEN_EXPIRY, using default", "value", cfg.Jwt.TokenExpiry)
		tokenExpiry = token.DefaultLifetime
	}

	hasher := password.NewPbkdf2Hasher()
	tokens := token.NewService([]byte(cfg.Jwt.Secret), token.WithLifetime(tokenExpiry))

	userService := user.NewService(userRepo, hasher)
	loginService := login.NewService(userRepo, hasher, tokens)
	articleService := article.NewService(articleRepo, userRepo,
		article.WithImageBaseURL(cfg.S3.PublicBaseURL))

	s3Client, err := upload.NewClient(ctx, cfg.S3)
	if err != nil {
		slog.Error("Failed to create S3 client", "err", err)
		os.Exit(1)
	}
	uploadService := upload.NewService(s3Client, cfg.S3.Bucket, cfg.S3.PublicBaseURL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		user.NewHandle(userService, tokens).RegisterRoutes(r)
		login.NewHandle(loginService).RegisterRoutes(r)
		article.NewHandle(articleService, tokens).RegisterRoutes(r)
		upload.NewHandle(uploadService, tokens).RegisterRoutes(r)
	})

	slog.Info("Listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		slog.Error("Server exited", "err", err)
		os.Exit(1)
	}
}
