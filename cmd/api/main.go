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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arsuhinars/open-polls/internal/handlers/dto"
	httphandlers "github.com/arsuhinars/open-polls/internal/handlers/http"
	"github.com/arsuhinars/open-polls/internal/handlers/middleware"
	"github.com/arsuhinars/open-polls/internal/infrastructure/config"
	"github.com/arsuhinars/open-polls/internal/infrastructure/logging"
	"github.com/arsuhinars/open-polls/internal/infrastructure/persistence/postgres"
	"github.com/arsuhinars/open-polls/internal/infrastructure/session"
	"github.com/arsuhinars/open-polls/internal/infrastructure/vk"
	"github.com/arsuhinars/open-polls/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting open-polls backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Conectar ao Redis (sessões)
	sessionStore, err := session.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		log.Fatal(err)
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	pollRepo := postgres.NewPollRepository(db)
	choiceRepo := postgres.NewOptionChoiceRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Client do provedor de identidade
	idp := vk.NewClient(&cfg.VK, cfg.Server.BaseURL+"/auth/callback")

	// Inicializar services
	authService := services.NewAuthService(userRepo, sessionStore, idp, logger)
	postService := services.NewPostService(postRepo, pollRepo, choiceRepo, userRepo, uow, logger)
	voteService := services.NewVoteService(postRepo, pollRepo, choiceRepo, uow, logger)

	// Inicializar handlers
	codec := middleware.NewSessionTokenCodec(cfg.Session.Secret)
	authMiddleware := middleware.NewAuthMiddleware(authService, codec, cfg.Session.CookieName, logger)
	authHandler := httphandlers.NewAuthHandler(authService, codec, cfg.Session.CookieName, logger)
	postHandler := httphandlers.NewPostHandler(postService)
	voteHandler := httphandlers.NewVoteHandler(voteService)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterValidations()

	router := gin.Default()

	// Middleware CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORS.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Autenticação: identifica o usuário em toda requisição;
	// rotas de escrita exigem usuário com Required()
	router.Use(authMiddleware.Identify())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// Auth routes
	router.GET("/auth/login", authHandler.Login)
	router.GET("/auth/callback", authHandler.Callback)
	router.GET("/auth/user", authHandler.User)
	router.GET("/auth/logout", authHandler.Logout)

	// API routes
	router.GET("/api/post/", postHandler.Get)
	authorized := router.Group("", authMiddleware.Required())
	{
		authorized.POST("/api/post/", postHandler.Create)
		authorized.PUT("/api/post/", postHandler.Update)
		authorized.DELETE("/api/post/", postHandler.Delete)
		authorized.GET("/api/set_post_publishing_state/", postHandler.SetPublishingState)
		authorized.GET("/api/my_posts/", postHandler.MyPosts)
		authorized.GET("/api/post_options_choices", voteHandler.GetChoices)
		authorized.POST("/api/post_options_choices", voteHandler.SubmitChoices)
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
