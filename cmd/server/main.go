package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmednasr/movie-motivator/server/internal/config"
	"github.com/ahmednasr/movie-motivator/server/internal/database"
	"github.com/ahmednasr/movie-motivator/server/internal/handler"
	"github.com/ahmednasr/movie-motivator/server/internal/logging"
	"github.com/ahmednasr/movie-motivator/server/internal/middleware"
	"github.com/ahmednasr/movie-motivator/server/internal/repository"
	"github.com/ahmednasr/movie-motivator/server/internal/service"
)

// main is the single entry‑point for the REST API.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Info().
		Str("provider", cfg.CompletionProvider).
		Str("model", cfg.CompletionModel).
		Bool("video_enrichment", cfg.EnableVideoEnrichment).
		Bool("history", cfg.MongoURI != "").
		Bool("auth", cfg.APIToken != "").
		Msg("configuration loaded")

	// Optional history store
	var (
		mongoClient *mongo.Client
		history     service.HistoryRepository
	)
	if cfg.MongoURI != "" {
		client, err := database.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer client.Disconnect(context.Background())
		mongoClient = client

		historyRepo := repository.NewHistoryRepository(client.Database(cfg.DBName))
		if err := historyRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to create history indexes")
		}
		history = historyRepo
		log.Info().Str("database", cfg.DBName).Msg("connected to MongoDB")
	}

	// Completion provider
	llm, closeLLM, err := newCompletionClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.CompletionProvider).Msg("failed to initialize completion provider")
	}
	defer closeLLM()

	// Video enrichment
	enricher := service.NewDisabledEnricher()
	var videoHealth handler.BreakerReporter
	if cfg.EnableVideoEnrichment {
		yt, err := service.NewYouTubeSearcher(ctx, service.YouTubeOptions{
			APIKey: cfg.YouTubeAPIKey,
			RPS:    cfg.VideoRPS,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize YouTube search")
		}
		enricher = service.NewVideoEnricher(yt, service.EnricherOptions{
			QuerySuffix: cfg.VideoQuerySuffix,
			Timeout:     cfg.VideoTimeout,
			Concurrency: cfg.EnrichConcurrency,
		})
		videoHealth = yt
	}

	// Initialize services
	recommendSvc := service.NewRecommendationService(llm, enricher, history, service.RecommendOptions{
		Provider:       cfg.CompletionProvider,
		PromptTemplate: cfg.PromptTemplate,
		Extract:        service.ExtractOptions{DropEmpty: cfg.DropEmptyTitles},
		Timeout:        cfg.CompletionTimeout,
	})
	gens := service.NewGenerationTracker(cfg.SessionTTL)
	go gens.RunSweeper(ctx, time.Minute)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          handler.ErrorHandler,
		DisableStartupMessage: true,
	})

	// Add middleware
	app.Use(middleware.Logging())

	// Register routes
	handler.RegisterRoutes(app, recommendSvc, gens, cfg.APIToken)

	// Add health check
	handler.NewHealthHandler(mongoClient, videoHealth).Register(app)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}

// newCompletionClient builds the configured provider and its cleanup func.
func newCompletionClient(ctx context.Context, cfg config.Config) (service.CompletionClient, func(), error) {
	switch cfg.CompletionProvider {
	case config.ProviderVertex:
		v, err := service.NewVertexLLM(ctx, cfg.ProjectID, cfg.Location, cfg.CompletionModel)
		if err != nil {
			return nil, nil, err
		}
		return v, func() { _ = v.Close() }, nil
	case config.ProviderStatic:
		return service.NewStaticLLM("Tenet, Memento, Interstellar, Arrival"), func() {}, nil
	default:
		return service.NewGroqLLM(service.GroqOptions{
			APIKey:  cfg.CompletionAPIKey,
			BaseURL: cfg.CompletionBaseURL,
			Model:   cfg.CompletionModel,
		}), func() {}, nil
	}
}
