package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/soliciteia/assistente/internal/adapter/api/controller"
	"github.com/soliciteia/assistente/internal/adapter/api/route"
	"github.com/soliciteia/assistente/internal/adapter/repository"
	"github.com/soliciteia/assistente/internal/infrastructure/database"
	"github.com/soliciteia/assistente/pkg/assistant"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/oracle"
	"github.com/soliciteia/assistente/pkg/session"
	"github.com/soliciteia/assistente/pkg/whatsapp"

	_ "github.com/soliciteia/assistente/docs"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados
	ctx := context.Background()
	config := database.NewPostgresConfig()
	db, err := database.NewPostgresDB(ctx, config)
	if err != nil {
		return nil, err
	}

	// Criar repositórios
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	productRepo := repository.NewProductRepository(db)
	lostFoundRepo := repository.NewLostFoundRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	sessionStore := repository.NewSessionRepository(db, sessionTTL())

	// Criar oráculos (opcionais; sem chave o assistente segue só com padrões)
	var semantic assistant.SemanticOracle
	var vision assistant.VisionOracle

	if s, err := oracle.NewSemantic(log); err != nil {
		log.Warn("Oráculo semântico desabilitado", "error", err)
	} else {
		semantic = s
	}

	if v, err := oracle.NewVision(log); err != nil {
		log.Warn("Oráculo de visão desabilitado", "error", err)
	} else {
		vision = v
	}

	// Montar o roteador de intenções e os handlers de domínio
	registry := session.Registry{}
	intentRouter := assistant.NewRouter(registry, log)

	handlers := []assistant.Handler{
		assistant.NewProviderHandler(log, providerRepo),
		assistant.NewMarketplaceHandler(log, productRepo),
		assistant.NewLostFoundHandler(log, lostFoundRepo),
		assistant.NewComplaintHandler(log, complaintRepo),
		assistant.NewConnectionHandler(log, connectionRepo),
		assistant.NewScholarshipHandler(log),
		assistant.NewFinancialHandler(log),
		assistant.NewWebSearchHandler(log, semantic),
	}

	for _, h := range handlers {
		if err := intentRouter.Register(h); err != nil {
			return nil, err
		}
	}

	if err := intentRouter.Validate(); err != nil {
		return nil, err
	}

	// Montar o motor de conversa
	sessions := session.NewManager(sessionStore, registry, log)
	telemetry := repository.NewConversationTelemetry(conversationRepo)
	engine := assistant.NewEngine(intentRouter, sessions, semantic, vision, telemetry, log)

	// Cliente do WhatsApp Cloud API
	waClient, err := whatsapp.NewClient(log)
	if err != nil {
		return nil, err
	}

	// Criar controllers
	webhookController := controller.NewWebhookController(engine, waClient, userRepo, log)
	authController := controller.NewAuthController(adminRepo)
	adminController := controller.NewAdminController(
		conversationRepo, userRepo, providerRepo, productRepo, lostFoundRepo, complaintRepo,
	)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	route.SetupWebhookRoutes(api, webhookController)
	route.SetupAuthRoutes(api, authController)
	route.SetupAdminRoutes(api, adminController)

	return &App{
		router: router,
		db:     db,
		logger: log,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("Servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// sessionTTL lê o tempo de vida das sessões de coleta do ambiente
func sessionTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}
