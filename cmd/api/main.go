package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aniladanir/campaign-manager/internal/cache"
	redisCache "github.com/aniladanir/campaign-manager/internal/cache/redis"
	"github.com/aniladanir/campaign-manager/internal/domain"
	httpHandler "github.com/aniladanir/campaign-manager/internal/handler/http"
	"github.com/aniladanir/campaign-manager/internal/metrics"
	"github.com/aniladanir/campaign-manager/internal/persistant"
	campaignRepo "github.com/aniladanir/campaign-manager/internal/repository/campaign"
	contactRepo "github.com/aniladanir/campaign-manager/internal/repository/contact"
	templateRepo "github.com/aniladanir/campaign-manager/internal/repository/template"
	"github.com/aniladanir/campaign-manager/internal/service"
	"github.com/aniladanir/campaign-manager/internal/store"
	"github.com/aniladanir/campaign-manager/internal/ws"
	"gorm.io/gorm"
)

var (
	configFile = flag.String("config", "config.json", "config file path")
	envFile    = flag.String("env", ".env", "dotenv file path")
)

var models = []any{&domain.Template{}, &domain.Contact{}, &domain.Campaign{}}

func main() {
	// create root context
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	// listen for terminate signal
	notifyCtx, stop := signal.NotifyContext(appCtx, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// parse flags
	flag.Parse()

	// parse config
	config, err := LoadConfig(*configFile, *envFile)
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// initialize external dependencies
	db, rCache, err := initExternalDependencies(notifyCtx, config)
	if err != nil {
		log.Fatalf("failed to initialize external dependencies: %v", err)
	}

	// init stores, restoring persisted state
	catalog, err := initCatalog(db, logger)
	if err != nil {
		log.Fatalf("failed to restore state: %v", err)
	}

	// init metrics
	m := metrics.New(catalog.Campaigns)

	// init websocket hub and stream campaign changes to it
	hub := ws.NewHub(logger.With(slog.String("component", "wsHub")))
	go hub.Run()
	catalog.Campaigns.Observe(hub.NotifyCampaign)

	// init dispatcher when a webhook is configured
	var dispatcher service.Dispatcher
	if config.WebHookUrl != "" {
		dispatcher, err = service.NewDispatcher(
			catalog,
			rCache,
			m,
			logger.With(slog.String("component", "dispatcher")),
			service.DispatcherConfig{
				WebhookURL:   config.WebHookUrl,
				MaxRetry:     &config.MsgMaxRetry,
				BatchSize:    config.MsgBatchSize,
				SendInterval: config.MsgSendInterval,
			},
		)
		if err != nil {
			log.Fatalf("failed to initiate dispatcher: %v", err)
		}
	}

	// init http handler
	httpHandler := httpHandler.NewHttpHandler(
		fmt.Sprintf(":%d", config.HttpPort),
		httpHandler.Dependencies{
			Catalog:    catalog,
			Dispatcher: dispatcher,
			Cache:      rCache,
			Hub:        hub,
			Registry:   m.Registry,
			Logger:     logger.With(slog.String("component", "httpHandler")),
		},
	)

	if dispatcher != nil {
		dispatcher.Start()
	}

	wg := sync.WaitGroup{}
	// run http handler
	wg.Go(func() {
		logger.Info("http server listening", slog.Int("port", config.HttpPort))
		if err := httpHandler.Run(); err != nil {
			logger.Error("http server encountered with an error and closed", "error", err.Error())
		}
		// cancel app context if http handler fails
		appCtxCancel()
	})

	// graceful shutdown
	wg.Go(func() {
		<-notifyCtx.Done()
		logger.Info("application shutting down...")

		shutDownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		if dispatcher != nil {
			dispatcher.Stop()
		}
		httpHandler.Shutdown(shutDownCtx)
		hub.Close()
		closeExternalDependencies(db, rCache)
	})

	wg.Wait()
	os.Exit(0)
}

func initExternalDependencies(ctx context.Context, config *Config) (db *gorm.DB, rCache cache.Cache, err error) {
	// initialize database, none keeps every store in memory
	if config.DbDriver != "" {
		if db, err = persistant.Open(ctx, config.DbDriver, config.DbConnString, models); err != nil {
			return
		}
	}

	// initialize cache
	if config.RedisAddr != "" {
		var rc *redisCache.RedisCache
		if rc, err = redisCache.NewRedisCache(ctx, config.RedisAddr); err != nil {
			return
		}
		rCache = rc
	}

	return
}

func closeExternalDependencies(db *gorm.DB, rCache cache.Cache) {
	if rc, ok := rCache.(*redisCache.RedisCache); ok {
		rc.Close()
	}
	if db != nil {
		persistant.Close(db)
	}
}

// initCatalog builds the stores, write-through to the database when one is
// configured and purely in memory otherwise.
func initCatalog(db *gorm.DB, logger *slog.Logger) (*service.Catalog, error) {
	var (
		templatesRepo store.TemplateRepository
		contactsRepo  store.ContactRepository
		campaignsRepo store.CampaignRepository
	)

	var (
		templates []domain.Template
		contacts  []domain.Contact
		campaigns []domain.Campaign
	)

	if db != nil {
		tRepo := templateRepo.NewTemplateRepository(db)
		cRepo := contactRepo.NewContactRepository(db)
		campRepo := campaignRepo.NewCampaignRepository(db)

		var err error
		if templates, err = tRepo.GetTemplates(); err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		if contacts, err = cRepo.GetContacts(); err != nil {
			return nil, fmt.Errorf("load contacts: %w", err)
		}
		if campaigns, err = campRepo.GetCampaigns(); err != nil {
			return nil, fmt.Errorf("load campaigns: %w", err)
		}
		templatesRepo, contactsRepo, campaignsRepo = tRepo, cRepo, campRepo
	}

	templateStore := store.NewTemplateStore(templatesRepo)
	templateStore.Restore(templates)
	contactStore := store.NewContactStore(contactsRepo)
	contactStore.Restore(contacts)
	ledger := store.NewCampaignLedger(templateStore, campaignsRepo)
	ledger.Restore(campaigns)

	logger.Info("state restored",
		slog.Int("templates", len(templates)),
		slog.Int("contacts", len(contacts)),
		slog.Int("campaigns", len(campaigns)))

	return service.NewCatalog(templateStore, contactStore, ledger, logger.With(slog.String("component", "catalog"))), nil
}
