package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/roteirolab/roteiro-backend/config"
	"github.com/roteirolab/roteiro-backend/handlers"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/middleware"
	"github.com/roteirolab/roteiro-backend/pkg/pexels"
	"github.com/roteirolab/roteiro-backend/services"
	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/store/local"
	"github.com/roteirolab/roteiro-backend/store/remote"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Stores: the remote pair exists only when the hosted backend is
	// configured; the local file stores are always available as fallback.
	var remoteQuotes store.QuoteStore
	var remoteDests store.DestinationStore
	if cfg.Supabase.IsConfigured() {
		client := remote.NewClient(&cfg.Supabase)
		remoteQuotes = remote.NewQuoteStore(client)
		remoteDests = remote.NewDestinationStore(client)
	} else {
		log.Info("Remote store not configured, running in offline mode")
	}

	localQuotes := local.NewQuoteStore(cfg.LocalStore.Dir)
	localDests := local.NewDestinationStore(cfg.LocalStore.Dir)

	repo := store.NewHybridRepository(
		remoteQuotes, localQuotes,
		remoteDests, localDests,
		cfg.Supabase.IsConfigured(),
	)

	// Services
	extractor := services.NewExtractorService(&cfg.Extractor)
	share := services.NewShareService(&cfg.Email)
	cache := services.NewPresentationCache(&cfg.Redis)

	var images pexels.ClientInterface
	if cfg.ExternalServices.PexelsAPIKey != "" {
		images = pexels.NewClient(cfg.ExternalServices.PexelsAPIKey)
	}

	// Handlers
	quoteHandler := handlers.NewQuoteHandler(repo, extractor, images, share, cache, cfg.Server.PublicBaseURL)
	presentationHandler := handlers.NewPresentationHandler(repo, cache)
	destinationHandler := handlers.NewDestinationHandler(repo, images)
	healthHandler := handlers.NewHealthHandler(repo, extractor)

	// Router setup
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
	}))

	r.GET("/health", healthHandler.Handle)

	v1 := r.Group("/v1")
	{
		quotes := v1.Group("/quotes")
		{
			quotes.POST("/extract", quoteHandler.ExtractHandler)
			quotes.POST("", quoteHandler.CreateQuoteHandler)
			quotes.GET("/:id", quoteHandler.GetQuoteHandler)
			quotes.POST("/:id/versions", quoteHandler.AddVersionHandler)
			quotes.POST("/:id/publish", quoteHandler.PublishHandler)
			quotes.POST("/:id/share", quoteHandler.ShareHandler)
		}

		// Public, client-facing entry point for shared links.
		v1.GET("/p/:publicId", presentationHandler.GetPresentationHandler)

		destinations := v1.Group("/destinations")
		{
			destinations.GET("/:key", destinationHandler.GetDestinationHandler)
			destinations.PUT("/:key", destinationHandler.UpsertDestinationHandler)
		}
	}

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
