package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"stayquote/internal/app/commands"
	availabilityapp "stayquote/internal/app/handlers/availability"
	profilesapp "stayquote/internal/app/handlers/profiles"
	quotesapp "stayquote/internal/app/handlers/quotes"
	"stayquote/internal/app/middleware"
	appoutbox "stayquote/internal/app/outbox"
	"stayquote/internal/app/queries"
	"stayquote/internal/app/uow"
	domainavailability "stayquote/internal/domain/availability"
	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/money"
	"stayquote/internal/infra/broker/kafka"
	"stayquote/internal/infra/config"
	mongodb "stayquote/internal/infra/db/mongo"
	ginserver "stayquote/internal/infra/http/gin"
	"stayquote/internal/infra/obs"
	infraoutbox "stayquote/internal/infra/outbox"
	"stayquote/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := cfg.FixturesPath
	if fixturesPath == "" {
		fixturesPath = defaultScopeFixturesPath()
	}
	if err := app.loadScopeFixtures(ctx, fixturesPath, cfg.DefaultCurrency, logger); err != nil {
		logger.Warn("scope fixtures load failed", "error", err, "path", fixturesPath)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers  ginserver.Handlers
	calendars domainavailability.Repository
	ready     func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		calendarRepo domainavailability.Repository
		uowFactory   uow.UoWFactory
		box          appoutbox.Outbox
		ready        = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		repo := mongodb.NewCalendarRepository(client.DB)
		calendarRepo = repo
		uowFactory = mongodb.Factory{DB: client.DB, CalendarRepo: repo}
		store := infraoutbox.NewStore(client.DB)
		box = store
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, fmt.Errorf("kafka producer: %w", err)
			}
			worker := &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
			go func() {
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("outbox worker stopped", "error", err)
				}
			}()
			if group := os.Getenv("KAFKA_CONSUMER_GROUP"); group != "" {
				go runEventTail(ctx, cfg, group, logger)
			}
		}
	default:
		repo := memory.NewCalendarRepository()
		calendarRepo = repo
		uowFactory = memory.Factory{CalendarRepo: repo}
		box = memory.NewOutbox()
	}

	idStore := memory.NewIdempotencyStore(cfg.IdempotencyTTL)

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, profilesapp.UpdateProfileCommand{}.Key(), &profilesapp.UpdateProfileHandler{
		UoWFactory: uowFactory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})
	commands.RegisterHandler(commandBus, availabilityapp.ApplyOverridesCommand{}.Key(), &availabilityapp.ApplyOverridesHandler{
		UoWFactory: uowFactory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, quotesapp.GetQuoteQuery{}.Key(), &quotesapp.GetQuoteHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		UoWFactory: uowFactory,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(middleware.SelfValidator{}),
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryValidation(middleware.SelfValidator{}),
	)

	return application{
		handlers: ginserver.Handlers{
			Quote: ginserver.QuoteHandler{
				Queries: queryBusWithMiddleware,
			},
			Calendar: ginserver.CalendarHandler{
				Queries:  queryBusWithMiddleware,
				Commands: commandBusWithMiddleware,
			},
			Profile: ginserver.ProfileHandler{
				Commands:        commandBusWithMiddleware,
				DefaultCurrency: cfg.DefaultCurrency,
			},
		},
		calendars: calendarRepo,
		ready:     ready,
	}, nil
}

// runEventTail consumes the service's own calendar topics and logs them,
// handy when verifying outbox delivery in a dev cluster.
func runEventTail(ctx context.Context, cfg config.Config, group string, logger *slog.Logger) {
	tail := kafka.MessageHandlerFunc(func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		logger.Info("event", "topic", msg.Topic, "key", string(msg.Key), "size", len(msg.Value))
		return nil
	})
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, group, nil, tail)
	if err != nil {
		logger.Error("kafka consumer init failed", "error", err)
		return
	}
	defer consumer.Close()
	topics := []string{
		cfg.KafkaTopicPrefix + "calendar.events.v1",
		cfg.KafkaTopicPrefix + "pricing.events.v1",
	}
	if err := consumer.Run(ctx, topics); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("kafka consumer stopped", "error", err)
	}
}

func (a application) loadScopeFixtures(ctx context.Context, path, currency string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("scope fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("scope fixtures file empty", "path", path)
		return nil
	}

	var fixtures []scopeFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now().UTC()
	for _, fx := range fixtures {
		cur := fx.Currency
		if cur == "" {
			cur = currency
		}
		profile := pricing.Profile{
			Base:       money.Money{Amount: fx.BasePrice, Currency: cur},
			BestDeal:   money.Money{Amount: fx.BestDealPrice, Currency: cur},
			PeakSeason: money.Money{Amount: fx.PeakSeasonPrice, Currency: cur},
		}
		calendar, err := domainavailability.NewCalendar(domainavailability.ScopeID(fx.Scope), profile)
		if err != nil {
			logger.Error("fixture profile invalid", "scope", fx.Scope, "error", err)
			continue
		}
		for _, entry := range fx.Overrides {
			override := domainavailability.Override{Type: pricing.PriceType(entry.Type)}
			override.Date, err = daterange.ParseDate(entry.Date)
			if err != nil {
				logger.Error("fixture override invalid", "scope", fx.Scope, "date", entry.Date, "error", err)
				continue
			}
			if entry.Price != nil {
				price := money.Money{Amount: *entry.Price, Currency: cur}
				override.Price = &price
			}
			if err := calendar.Apply(override, now); err != nil {
				logger.Error("fixture override rejected", "scope", fx.Scope, "date", entry.Date, "error", err)
			}
		}
		calendar.ClearEvents()
		if err := a.calendars.Save(ctx, calendar); err != nil {
			logger.Error("cannot store fixture calendar", "scope", fx.Scope, "error", err)
			continue
		}
		logger.Info("scope fixture imported", "scope", fx.Scope, "overrides", len(calendar.Entries))
	}
	return nil
}

type scopeFixture struct {
	Scope           string            `json:"scope"`
	BasePrice       int64             `json:"base_price"`
	BestDealPrice   int64             `json:"best_deal_price"`
	PeakSeasonPrice int64             `json:"peak_season_price"`
	Currency        string            `json:"currency"`
	Overrides       []fixtureOverride `json:"overrides"`
}

type fixtureOverride struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Price *int64 `json:"price"`
}

func defaultScopeFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "scopes.json"),
		filepath.Join("..", "data", "scopes.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}
