package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-feed-service/internal/adapters/listingtier"
	logger_adapter "listing-feed-service/internal/adapters/logger"
	"listing-feed-service/internal/adapters/marketplace"
	"listing-feed-service/internal/adapters/memcache"
	"listing-feed-service/internal/adapters/mockdata"
	postgres_adapter "listing-feed-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-feed-service/internal/adapters/rabbitmq"
	"listing-feed-service/internal/adapters/rediscache"
	"listing-feed-service/internal/adapters/rest"
	"listing-feed-service/internal/adapters/scheduler"
	"listing-feed-service/internal/configs"
	"listing-feed-service/internal/core/port"
	"listing-feed-service/internal/core/usecase"
	fluentlogger "listing-feed-service/pkg/fluent_logger"
	"listing-feed-service/pkg/postgres"
	"listing-feed-service/pkg/rabbitmq"
)

// App wires every adapter and use case together and owns their lifecycle.
type App struct {
	config       *configs.AppConfig
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	dbPool      *pgxpool.Pool
	connManager *rabbitmq.ConnectionManager

	messageEventsListener port.EventListenerPort
	acceptedPublisher     *rabbitmq_adapter.AcceptedEventPublisher
	syncScheduler         *scheduler.PendingSyncScheduler
	saveDraftUC           *usecase.SaveDraft
}

// NewApp is the composition root: all dependencies are created and bound here.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- loggers ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- durable KV store ---
	var (
		kvStore port.KVStorePort
		dbPool  *pgxpool.Pool
	)
	switch appConfig.Store.Backend {
	case "redis":
		kvStore, err = rediscache.NewRedisStore(context.Background(), appConfig.Store.RedisAddr, appConfig.Store.RedisPassword)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", err, nil)
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		appLogger.Info("Redis store initialized.", nil)
	case "postgres":
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Store.DatabaseURL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		kvStore, err = postgres_adapter.NewPostgresKVStore(context.Background(), dbPool)
		if err != nil {
			appLogger.Error("Failed to create postgres KV store", err, nil)
			dbPool.Close()
			return nil, err
		}
		appLogger.Info("PostgreSQL store initialized.", nil)
	default:
		kvStore = memcache.NewMemoryStore()
		appLogger.Info("In-memory store initialized.", nil)
	}

	// --- upstream marketplace client ---
	marketplaceClient := marketplace.NewClient(
		appConfig.Marketplace.BaseURL,
		time.Duration(appConfig.Marketplace.TimeoutSeconds)*time.Second,
		appConfig.Marketplace.ServiceToken,
	)

	// --- fallback chain: remote, then in-process cache, then the durable
	// store, then the bundled samples ---
	sampleData := mockdata.NewSampleData()
	cacheTTL := time.Duration(appConfig.Store.CacheTTLSeconds) * time.Second

	remoteTier := marketplace.NewRemoteTier(marketplaceClient)
	cacheTier := listingtier.NewKVListingTier("cache", memcache.NewMemoryStore(), cacheTTL)
	storeTier := listingtier.NewKVListingTier("store", kvStore, 0)
	sampleTier := mockdata.NewSampleTier(sampleData)

	pendingStore := usecase.NewPendingStore(kvStore)

	// --- rabbitmq (optional) ---
	var (
		connManager       *rabbitmq.ConnectionManager
		acceptedPublisher *rabbitmq_adapter.AcceptedEventPublisher
		eventsPort        port.ConversationEventsPort
	)
	if appConfig.RabbitMQ.Enabled {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManager, err = rabbitmq.NewConnectionManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
		if err != nil {
			appLogger.Error("Failed to create RabbitMQ connection manager", err, nil)
			closePool(dbPool)
			return nil, err
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		publisherLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_publisher"})
		acceptedPublisher, err = rabbitmq_adapter.NewAcceptedEventPublisher(connManager, publisherLogger)
		if err != nil {
			appLogger.Error("Failed to create accepted-event publisher", err, nil)
			closePool(dbPool)
			return nil, err
		}
		eventsPort = acceptedPublisher
	}

	// --- use cases ---
	getHomeFeedUC := usecase.NewGetHomeFeedUseCase(marketplaceClient, sampleData)
	findListingsUC := usecase.NewFindListingsUseCase(marketplaceClient, sampleData)
	resolveListingUC := usecase.NewResolveListingUseCase(remoteTier, cacheTier, storeTier, sampleTier)
	getFilterOptionsUC := usecase.NewGetFilterOptions()
	getAgentsUC := usecase.NewGetAgents(marketplaceClient)

	getConversationsUC := usecase.NewGetConversations(marketplaceClient, kvStore)
	getMessagesUC := usecase.NewGetMessages(marketplaceClient, kvStore)
	sendMessageUC := usecase.NewSendMessage(marketplaceClient, kvStore)
	listPendingUC := usecase.NewListPending(marketplaceClient, pendingStore)
	acceptPendingUC := usecase.NewAcceptPending(marketplaceClient, pendingStore, eventsPort)
	ignorePendingUC := usecase.NewIgnorePending(marketplaceClient, pendingStore)
	ingestPendingUC := usecase.NewIngestPending(pendingStore)
	syncPendingUC := usecase.NewSyncPending(marketplaceClient, pendingStore)

	getDraftUC := usecase.NewGetDraft(kvStore, sampleData)
	saveDraftUC := usecase.NewSaveDraft(kvStore, baseLogger.WithFields(port.Fields{"component": "draft_saver"}), 2*time.Second)

	appLogger.Info("All use cases initialized.", nil)

	// --- inbound adapters ---
	var messageEventsListener port.EventListenerPort
	if appConfig.RabbitMQ.Enabled {
		listenerLogger := baseLogger.WithFields(port.Fields{"component": "message_events_listener"})
		messageEventsListener, err = rabbitmq_adapter.NewMessageEventsListener(connManager, ingestPendingUC, listenerLogger)
		if err != nil {
			appLogger.Error("Failed to create message events listener", err, nil)
			closePool(dbPool)
			return nil, err
		}
		appLogger.Info("Message Events Listener initialized.", nil)
	}

	syncScheduler := scheduler.NewPendingSyncScheduler(
		appConfig.Scheduler.PendingSyncSchedule,
		syncPendingUC,
		baseLogger.WithFields(port.Fields{"component": "pending_sync"}),
	)

	// --- REST server ---
	listingHandler := rest.NewListingHandler(getHomeFeedUC, findListingsUC, resolveListingUC, getFilterOptionsUC, getAgentsUC)
	messagingHandler := rest.NewMessagingHandler(getConversationsUC, getMessagesUC, sendMessageUC, listPendingUC, acceptPendingUC, ignorePendingUC)
	draftHandler := rest.NewDraftHandler(getDraftUC, saveDraftUC)

	apiServer := rest.NewServer(appConfig.Rest.Port, listingHandler, messagingHandler, draftHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:                appConfig,
		apiServer:             apiServer,
		fluentClient:          fluentClient,
		logger:                appLogger,
		dbPool:                dbPool,
		connManager:           connManager,
		messageEventsListener: messageEventsListener,
		acceptedPublisher:     acceptedPublisher,
		syncScheduler:         syncScheduler,
		saveDraftUC:           saveDraftUC,
	}, nil
}

// Run starts every component and blocks until a shutdown signal or a fatal
// component error.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.syncScheduler != nil {
			a.syncScheduler.Stop()
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		// debounced drafts must land before the store goes away
		if a.saveDraftUC != nil {
			a.saveDraftUC.Flush()
		}

		if a.messageEventsListener != nil {
			if err := a.messageEventsListener.Close(); err != nil {
				a.logger.Error("Error closing message events listener", err, nil)
			}
		}
		if a.acceptedPublisher != nil {
			if err := a.acceptedPublisher.Close(); err != nil {
				a.logger.Error("Error closing accepted-event publisher", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection", err, nil)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	if a.messageEventsListener != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listenerLogger := a.logger.WithFields(port.Fields{"listener_name": "Message Events Listener"})
			listenerLogger.Info("Starting listener...", nil)
			if err := a.messageEventsListener.Start(appCtx); err != nil {
				listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("message events listener error: %w", err)
			} else {
				listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
			}
		}()
	}

	if err := a.syncScheduler.Start(); err != nil {
		cancelApp()
		return err
	}

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()
	return nil
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
