package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/database"
	"taskmanager/internal/handler"
	"taskmanager/internal/middleware"
	"taskmanager/internal/realtime"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Tasks   *handler.TaskHandler
	Gateway *realtime.Gateway
	Tokens  middleware.TokenParser
}

func Init(cfg *config.Config) (*Server, error) {
	if cfg.AutoMigrate {
		if err := database.Migrate(cfg); err != nil {
			return nil, err
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, userService)
	authService := service.NewAuthService(userService, tokens)

	h := Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Users:   handler.NewUserHandler(userService),
		Tasks:   handler.NewTaskHandler(taskService),
		Gateway: realtime.NewGateway(realtime.NewRegistry(), userService, taskService, tokens),
		Tokens:  tokens,
	}

	return &Server{
		Engine: NewRouter(cfg, h),
		DB:     db,
		Config: cfg,
	}, nil
}

func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/api/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", h.Gateway.ServeWS)

	api := r.Group("/api")

	// Public routes
	api.POST("/auth", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Protected routes - require authentication
	authorized := api.Group("")
	authorized.Use(middleware.JWTAuthMiddleware(h.Tokens))
	{
		// User routes
		authorized.GET("/users", h.Users.List)
		authorized.GET("/users/me", h.Users.Me)
		authorized.PATCH("/users/me", h.Users.UpdateMe)
		authorized.DELETE("/users/me", h.Users.DeleteMe)
		authorized.GET("/users/:userId", h.Users.GetByID)

		// Task routes
		authorized.POST("/tasks", h.Tasks.Create)
		authorized.GET("/tasks/:taskId", h.Tasks.GetByID)
		authorized.GET("/tasks/users/:userId", h.Tasks.ListByOwner)
		authorized.PATCH("/tasks/:taskId/users/:userId", h.Tasks.Update)
		authorized.DELETE("/tasks/:taskId/users/:userId", h.Tasks.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Info().Str("port", s.Config.ServerPort).Msg("🚀 Server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Server forced to shutdown")
	}
	database.Close(s.DB)

	log.Info().Msg("✅ Server exited properly")
}
