package main

import (
	"flag"
	"fmt"

	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gitcoinco/passport-scorer/internal/adapter"
	"github.com/gitcoinco/passport-scorer/internal/config"
	"github.com/gitcoinco/passport-scorer/internal/dedup"
	"github.com/gitcoinco/passport-scorer/internal/logger"
	"github.com/gitcoinco/passport-scorer/internal/providers/jetstream"
	temporal "github.com/gitcoinco/passport-scorer/internal/providers/temporal"
	"github.com/gitcoinco/passport-scorer/internal/reader"
	"github.com/gitcoinco/passport-scorer/internal/scoring"
	"github.com/gitcoinco/passport-scorer/internal/store"
	"github.com/gitcoinco/passport-scorer/internal/validator"
	"github.com/gitcoinco/passport-scorer/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadScoringWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "scoring-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.Info("Starting Scoring Worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}
	logger.Info("Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Registry.Timeout)

	// Initialize passport reader
	passportReader := reader.NewHTTPReader(httpClient, cfg.Registry.URL)
	logger.Info("Initialized passport reader", zap.String("registry_url", cfg.Registry.URL))

	// Initialize credential validator
	credentialValidator := validator.NewCredentialValidator(cfg.Validator.TrustedIssuers)

	// Initialize deduplication engine
	dedupEngine := dedup.NewEngine(dataStore, clockAdapter)

	// Initialize scorer
	weights, err := scoring.ParseWeights(cfg.Scorer.Weights)
	if err != nil {
		logger.Fatal("Failed to parse scoring weights", zap.Error(err))
	}
	threshold, err := decimal.NewFromString(cfg.Scorer.Threshold)
	if err != nil {
		logger.Fatal("Failed to parse scoring threshold", zap.Error(err), zap.String("threshold", cfg.Scorer.Threshold))
	}
	scorer := scoring.NewWeightedScorer(scoring.Config{
		Weights:   weights,
		Threshold: threshold,
	})
	logger.Info("Initialized scorer",
		zap.Int("weights", len(weights)),
		zap.String("threshold", threshold.String()),
	)

	// Initialize NATS publisher for the score update feed
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.Fatal("Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()
	logger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Initialize executor for activities
	executor := workflows.NewExecutor(dataStore, passportReader, credentialValidator, dedupEngine, scorer, publisher, jsonAdapter, clockAdapter)

	// Connect to Temporal with logger integration
	temporalLogger := temporal.NewZapLoggerAdapter(logger.Default())
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporalLogger,
	})
	if err != nil {
		logger.Fatal("Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.Info("Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.ScoringTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})
	logger.Info("Created Temporal worker", zap.String("taskQueue", cfg.Temporal.ScoringTaskQueue))

	// Create scoring worker instance
	scoringWorker := workflows.NewWorker(executor, workflows.WorkerConfig{
		TaskQueue: cfg.Temporal.ScoringTaskQueue,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(scoringWorker.ScorePassport)
	logger.Info("Registered workflows")

	// Register activities
	// Activities will be called by workflows
	temporalWorker.RegisterActivity(executor.ClaimPassport)
	temporalWorker.RegisterActivity(executor.MarkScoreProcessing)
	temporalWorker.RegisterActivity(executor.FetchPassport)
	temporalWorker.RegisterActivity(executor.ValidateStamps)
	temporalWorker.RegisterActivity(executor.DeduplicateStamps)
	temporalWorker.RegisterActivity(executor.EvictDisplacedStamps)
	temporalWorker.RegisterActivity(executor.SaveStamps)
	temporalWorker.RegisterActivity(executor.ComputeAndSaveScore)
	temporalWorker.RegisterActivity(executor.MarkScoreError)
	temporalWorker.RegisterActivity(executor.PublishScoreUpdate)
	logger.Info("Registered activities")

	// Run worker until interrupted
	if err := temporalWorker.Run(worker.InterruptCh()); err != nil {
		logger.Fatal("Worker stopped with error", zap.Error(err))
	}
	logger.Info("Worker stopped")
}
