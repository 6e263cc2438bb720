package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchlist-server/config"
	_ "watchlist-server/docs"
	"watchlist-server/internal/handler"
	"watchlist-server/internal/repository"
	"watchlist-server/internal/security"
	"watchlist-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Watchlist-server
// @version 1.0
// @description REST API для ведения watchlist фильмов с JWT аутентификацией и отзывом токенов

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerConfig.Addr)

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	revocationRepo := repository.NewRevocationRepository(redisClient)

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(userRepo, jwtService, revocationRepo, &cfg.JWT)
	userService := service.NewUserService(userRepo)
	movieService := service.NewMovieService(movieRepo, userRepo)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService)
	userHandler := handler.NewUserHandler(userService)
	movieHandler := handler.NewMovieHandler(movieService)
	healthzHandler := handler.NewHealthzHandler(db, redisClient)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/healthz", healthzHandler.Healthz)

	setupAuthRoutes(router, authHandler, jwtService, revocationRepo, cfg)
	setupUserRoutes(router, userHandler, jwtService, revocationRepo, cfg)
	setupMovieRoutes(router, movieHandler, jwtService, revocationRepo, cfg)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService, revocationRepo *repository.RevocationRepository, cfg *config.AppConfig) {
	r.Route("/api/auth", func(r chi.Router) {
		// логин и операции с refresh токеном выполняются без access токена:
		// refresh токен разбирается в самих обработчиках
		r.Group(func(r chi.Router) {
			r.Post("/", h.Login)
			r.Post("/logout", h.Logout)
			r.Post("/refresh", h.Refresh)
		})
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService, revocationRepo, &cfg.JWT))
			r.Post("/cleanup", h.Cleanup)
			r.Post("/revoke-all", h.RevokeAll)
			r.Post("/revoke-user", h.RevokeUser)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService, revocationRepo *repository.RevocationRepository, cfg *config.AppConfig) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, revocationRepo, &cfg.JWT))

		r.Get("/", h.ListUsers)
		r.Head("/", h.ListUsers)
		r.Post("/", h.CreateUser)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Put("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)
		})
	})
}

func setupMovieRoutes(r chi.Router, h *handler.MovieHandler, jwtService *security.JWTService, revocationRepo *repository.RevocationRepository, cfg *config.AppConfig) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, revocationRepo, &cfg.JWT))

		r.Get("/", h.ListMovies)
		r.Post("/", h.CreateMovie)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetMovie)
			r.Put("/", h.UpdateMovie)
			r.Delete("/", h.DeleteMovie)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
