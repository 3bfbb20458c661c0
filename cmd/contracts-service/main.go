package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/contractgen/internal/auth"
	"github.com/nurpe/contractgen/internal/config"
	"github.com/nurpe/contractgen/internal/contract"
	"github.com/nurpe/contractgen/internal/db"
	"github.com/nurpe/contractgen/internal/excel"
	httphandler "github.com/nurpe/contractgen/internal/http"
	"github.com/nurpe/contractgen/internal/http/middleware"
	"github.com/nurpe/contractgen/internal/logger"
	"github.com/nurpe/contractgen/internal/pdf"
	"github.com/nurpe/contractgen/internal/registry"
	"github.com/nurpe/contractgen/internal/render"
	"github.com/nurpe/contractgen/internal/repository"
	"github.com/nurpe/contractgen/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	renderer, err := render.NewDocxRenderer(cfg.Documents.TemplatePath, cfg.Documents.LicenseKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init docx renderer")
	}

	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.Warn().Err(err).Msg("timezone data unavailable, history export uses UTC")
		moscow = time.UTC
	}

	profileRepo := repository.NewProfileRepository(database)
	deps := service.ContractDeps{
		Lookup:       newRegistry(cfg, log),
		Profiles:     profileRepo,
		History:      repository.NewHistoryRepository(database),
		Renderer:     renderer,
		Exporter:     excel.NewGenerator(moscow),
		Builder:      contract.NewBuilder(),
		HistoryLimit: cfg.Documents.HistoryLimit,
	}
	if summary, err := pdf.LoadGenerator(cfg.Documents.PDFFontPath); err != nil {
		log.Warn().Err(err).Msg("pdf summary disabled")
	} else {
		deps.Summary = summary
	}

	contractService := service.NewContractService(deps, log)
	profileService := service.NewProfileService(profileRepo, log)
	authService := service.NewAuthService(
		repository.NewUserRepository(database),
		auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL),
		log,
	)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, profileService, authService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting contracts service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// порядок: DataNewton, API-ФНС (резерв), DaData
func newRegistry(cfg *config.Config, log zerolog.Logger) *registry.Service {
	provider := func(p config.ProviderConfig) registry.ProviderConfig {
		return registry.ProviderConfig{
			BaseURL:  p.BaseURL,
			Key:      p.Key,
			Secret:   p.Secret,
			Timeout:  cfg.Registry.Timeout,
			Interval: cfg.Registry.Interval,
		}
	}

	var sources []registry.Source
	if cfg.Registry.DataNewton.Enabled() {
		sources = append(sources, registry.Source{Provider: registry.NewDataNewtonProvider(provider(cfg.Registry.DataNewton))})
	}
	if cfg.Registry.FNS.Enabled() {
		sources = append(sources, registry.Source{Provider: registry.NewFNSProvider(provider(cfg.Registry.FNS)), Backup: true})
	}
	if cfg.Registry.DaData.Enabled() {
		sources = append(sources, registry.Source{Provider: registry.NewDaDataProvider(provider(cfg.Registry.DaData))})
	}
	if len(sources) == 0 {
		log.Warn().Msg("no registry provider keys configured")
	}

	var fallback registry.Provider
	if cfg.Registry.UseMock {
		fallback = registry.MockProvider{}
	}

	var cache registry.Cache
	if cfg.Redis.URL != "" {
		client, err := registry.Connect(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init redis client")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis is unreachable, registry cache disabled")
		} else {
			cache = registry.NewRedisCache(client, cfg.Redis.TTL)
		}
	}

	return registry.NewService(log, cache, fallback, sources...)
}
