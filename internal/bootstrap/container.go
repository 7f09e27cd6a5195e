package bootstrap

import (
	"context"
	"log"

	"doc-intel-be/internal/config"
	"doc-intel-be/internal/controller"
	"doc-intel-be/internal/handler"
	"doc-intel-be/internal/pkg/logger"
	"doc-intel-be/internal/repository/unitofwork"
	"doc-intel-be/internal/service"
	"doc-intel-be/internal/websocket"
	"doc-intel-be/pkg/analysis"
	"doc-intel-be/pkg/chunking"
	"doc-intel-be/pkg/classify"
	"doc-intel-be/pkg/embedding"
	"doc-intel-be/pkg/llm/factory"
	"doc-intel-be/pkg/ontology"
	"doc-intel-be/pkg/rag/retrieval"

	pktNats "doc-intel-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController   controller.IDocumentController
	QueryController      controller.IQueryController
	ComparisonController controller.IComparisonController
	OntologyController   controller.IOntologyController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Progress Updates
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Dedicated logger for model prompts and responses
	llmLogger := newLLMLogger(cfg.Ai.LLMLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingKey := cfg.Keys.GoogleGemini
	if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingKey = cfg.Keys.Jina
	}
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		embeddingKey,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	var llmKey string
	switch cfg.Ai.LLMProvider {
	case "gemini":
		llmKey = cfg.Keys.GoogleGemini
	case "openai":
		llmKey = cfg.Keys.OpenAI
	case "huggingface":
		llmKey = cfg.Keys.HuggingFace
	}
	llmBaseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmKey,
		llmBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Domain Components
	ontologyManager := ontology.NewManager()
	classifier := classify.NewClassifier(llmProvider, llmLogger)
	chunker := chunking.NewChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	analysisClient := analysis.NewClient(llmProvider, llmLogger)

	vectorIndex := service.NewVectorIndex(uowFactory)
	retriever := retrieval.NewVectorRetriever(embeddingProvider, vectorIndex)

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
	)

	documentService := service.NewDocumentService(
		classifier,
		ontologyManager,
		chunker,
		uowFactory,
		publisherService,
		natsPub,
	)
	queryService := service.NewQueryService(retriever, analysisClient, ontologyManager, rdb, llmLogger)
	comparisonService := service.NewComparisonService(retriever, analysisClient, ontologyManager, natsPub, llmLogger)
	ontologyService := service.NewOntologyService(ontologyManager)

	// Progress relay worker
	notifService := service.NewNotificationService(natsSub, wsHub, sysLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	progressHandler := handler.NewProgressHandler(wsHub, wsLogger)

	// 7. Controllers
	return &Container{
		DocumentController:   controller.NewDocumentController(documentService),
		QueryController:      controller.NewQueryController(queryService),
		ComparisonController: controller.NewComparisonController(comparisonService),
		OntologyController:   controller.NewOntologyController(ontologyService),

		ConsumerService: consumerService,

		ProgressHandler: progressHandler,
		WebSocketHub:    wsHub,
	}
}

// newLLMLogger writes prompt/response traces to a rotating file, separate
// from the application log.
func newLLMLogger(path string) *log.Logger {
	return log.New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}, "", log.LstdFlags)
}
