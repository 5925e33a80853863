package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/komolbek/expostandai/internal/adapter/repo"
	"github.com/komolbek/expostandai/internal/http/handlers"
	httpapi "github.com/komolbek/expostandai/internal/http/httpapi"
	"github.com/komolbek/expostandai/internal/infra"
	"github.com/komolbek/expostandai/internal/infra/geoip"
	"github.com/komolbek/expostandai/internal/middleware"
	"github.com/komolbek/expostandai/internal/notify"
	"github.com/komolbek/expostandai/internal/providers/openai"
	"github.com/komolbek/expostandai/internal/providers/replicate"
	"github.com/komolbek/expostandai/internal/standgen"
	"github.com/komolbek/expostandai/internal/storage"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	runner := infra.NewSQLRunner(dbpool, logger)

	files, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open file storage")
	}

	httpClient := &http.Client{Timeout: 120 * time.Second}
	dalle, err := openai.NewClient(openai.Options{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		ImageModel:  cfg.OpenAIImageModel,
		VisionModel: cfg.OpenAIVisionModel,
		HTTPClient:  httpClient,
		Logger:      &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build openai client")
	}
	flux, err := replicate.NewClient(replicate.Options{
		APIToken:   cfg.ReplicateAPIToken,
		BaseURL:    cfg.ReplicateBaseURL,
		Model:      cfg.ReplicateModel,
		HTTPClient: httpClient,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build replicate client")
	}

	analyzer := standgen.NewLogoAnalyzer(dalle, cfg.PublicBaseURL, logger)
	dispatcher := standgen.NewDispatcher(dalle, flux, logger)
	orchestrator := standgen.NewOrchestrator(analyzer, dispatcher, logger)

	email := notify.NewEmailSender(notify.EmailOptions{
		APIKey: cfg.ResendAPIKey,
		From:   cfg.EmailFrom,
	})
	telegram := notify.NewTelegramSender(notify.TelegramOptions{
		BotToken: cfg.TelegramBotToken,
		ChatID:   cfg.TelegramChatID,
	})
	notifier := notify.NewService(email, telegram, cfg.AdminEmail, cfg.PublicBaseURL, logger)

	var country middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, country detection limited to proxy headers")
	} else if resolver != nil {
		defer resolver.Close()
		country = resolver.CountryCode
	}

	app := &handlers.App{
		Cfg:        cfg,
		Log:        logger,
		Inquiries:  repo.NewInquiryRepository(runner),
		PromoCodes: repo.NewPromoCodeRepository(runner),
		Admins:     repo.NewAdminRepository(runner),
		Generator:  orchestrator,
		Files:      files,
		Notifier:   notifier,
	}

	router := httpapi.NewRouter(app, country)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
