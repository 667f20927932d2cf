package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"poolbot/internal/bot"
	"poolbot/internal/config"
	"poolbot/internal/google"
	"poolbot/internal/logger"
	"poolbot/internal/notify"
	"poolbot/internal/repository"
	"poolbot/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	// Загрузка конфигурации
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logger.New(cfg.Logging, cfg.App)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("bot terminated")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := cfg.Schedule()
	if err != nil {
		return fmt.Errorf("build schedule: %w", err)
	}

	// Инициализация Redis (необязательно)
	stores, err := repository.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory storage")
		stores = repository.NewMemoryStores()
	}
	defer stores.Close()
	log.Info().Str("backend", stores.Backend()).Msg("storage initialized")

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("create bot api: %w", err)
	}
	botAPI.Debug = cfg.Telegram.Debug
	log.Info().Str("account", botAPI.Self.UserName).Msg("Authorized on account")

	// Журнал заявок в Google Sheets (необязательно)
	var journal bot.Journal
	if cfg.Google.Enabled() {
		sheetsService, err := google.NewSimpleSheetsService(ctx, cfg.Google.GoogleCredentialsFile, cfg.Google.BookingSpreadSheetId)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		} else if err := sheetsService.TestConnection(ctx); err != nil {
			log.Warn().Err(err).Msg("Google Sheets connection test failed")
		} else {
			journal = sheetsService
			log.Info().Msg("Google Sheets journal enabled")
		}
	}

	if cfg.Operator.ChatID == 0 {
		log.Warn().Msg("operator chat is not configured, notifications are disabled")
	}

	var metrics *bot.Metrics
	if cfg.Monitoring.PrometheusEnabled {
		metrics = bot.NewMetrics(prometheus.DefaultRegisterer)
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, log)
	}

	telegramBot := bot.New(bot.Deps{
		API:       botAPI,
		Pool:      cfg.Pool,
		Operator:  cfg.Operator,
		RateLimit: cfg.Telegram.RateLimit,
		Generator: schedule.NewGenerator(sched, stores.Bookings),
		Bookings:  stores.Bookings,
		Questions: stores.Questions,
		Notifier:  notify.NewOperator(botAPI, cfg.Operator.ChatID, log),
		Journal:   journal,
		Metrics:   metrics,
		Logger:    log,
	})

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Info().Str("pool", cfg.Pool.Name).Str("timezone", sched.Location().String()).Msg("Бот запущен...")
	telegramBot.Start(ctx, updates)

	log.Info().Msg("Shutdown signal received...")
	botAPI.StopReceivingUpdates()
	return nil
}

func startMetricsServer(ctx context.Context, port int, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	log.Info().Int("port", port).Msg("metrics server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server error")
	}
}
