package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"PredictPulse/internal/domain/models"
	"PredictPulse/internal/domain/repository"
	"PredictPulse/internal/handler/api"
	"PredictPulse/internal/handler/ws"
	"PredictPulse/internal/ranking"
	internalrepo "PredictPulse/internal/repository"
	"PredictPulse/internal/service/assistant"
	"PredictPulse/internal/service/semantic"
	"PredictPulse/internal/usecase"
	pkgch "PredictPulse/pkg/clickhouse"
	"PredictPulse/pkg/config"
	xhttp "PredictPulse/pkg/http"
	"PredictPulse/pkg/logger"
	"PredictPulse/pkg/metrics"
	"PredictPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCatalogSource builds the combined catalog source from the
// configured platforms.
func ProvideCatalogSource(cfg *config.Config, l *logger.Logger, m repository.Metrics) repository.CatalogSource {
	var sources []repository.CatalogSource
	if cfg.Catalog.Source == "file" {
		if cfg.Catalog.Kalshi.File != "" {
			sources = append(sources, internalrepo.NewFileSource(cfg.Catalog.Kalshi.File, models.PlatformKalshi))
		}
		if cfg.Catalog.Polymarket.File != "" {
			sources = append(sources, internalrepo.NewFileSource(cfg.Catalog.Polymarket.File, models.PlatformPolymarket))
		}
	} else {
		if cfg.Catalog.Kalshi.BaseURL != "" {
			sources = append(sources, internalrepo.NewKalshiSource(cfg.Catalog.Kalshi.BaseURL, cfg.Catalog.Kalshi.PageLimit, l))
		}
		if cfg.Catalog.Polymarket.BaseURL != "" {
			sources = append(sources, internalrepo.NewPolymarketSource(cfg.Catalog.Polymarket.BaseURL, cfg.Catalog.Polymarket.PageLimit, l))
		}
	}
	return internalrepo.NewMultiSource(l, m, sources...)
}

// ProvideCatalogHolder creates the snapshot holder.
func ProvideCatalogHolder(source repository.CatalogSource, l *logger.Logger, m repository.Metrics) *usecase.CatalogHolder {
	return usecase.NewCatalogHolder(source, l, m)
}

// ProvideSemanticSearcher creates the embedding search client.
func ProvideSemanticSearcher(cfg *config.Config, l *logger.Logger) repository.SemanticSearcher {
	return semantic.NewClient(semantic.Config{
		URL:      cfg.Semantic.URL,
		TopK:     cfg.Semantic.TopK,
		Timeout:  cfg.Semantic.Timeout,
		CacheTTL: cfg.Semantic.CacheTTL,
	}, l)
}

// ProvideAssistant creates the chat backend client.
func ProvideAssistant(cfg *config.Config) repository.Assistant {
	return assistant.NewClient(assistant.Config{
		URL:     cfg.Assistant.URL,
		Timeout: cfg.Assistant.Timeout,
	})
}

// ProvidePreferenceStore creates the Redis-backed preference store, or
// the in-memory fallback when Redis is not configured.
func ProvidePreferenceStore(cfg *config.Config) (repository.PreferenceStore, error) {
	if !cfg.Preferences.Redis.Enabled {
		return internalrepo.NewMemoryPreferenceStore(), nil
	}
	store, err := internalrepo.NewRedisPreferenceStore(internalrepo.RedisConfig{
		Addr:     cfg.Preferences.Redis.Addr,
		Password: cfg.Preferences.Redis.Password,
		DB:       cfg.Preferences.Redis.DB,
		Prefix:   cfg.Preferences.Redis.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("preference store: %w", err)
	}
	return store, nil
}

// ProvideInteractionPublisher creates the Kafka interaction stream, or
// nil when disabled.
func ProvideInteractionPublisher(cfg *config.Config) (repository.InteractionPublisher, error) {
	if !cfg.Interactions.Enabled {
		return nil, nil
	}
	pub, err := internalrepo.NewKafkaInteractionPublisher(cfg.Interactions.Brokers, cfg.Interactions.Topic)
	if err != nil {
		return nil, fmt.Errorf("interaction publisher: %w", err)
	}
	return pub, nil
}

// ProvideRankingLog creates the ClickHouse audit sink, or nil when
// disabled.
func ProvideRankingLog(cfg *config.Config) (repository.RankingLog, error) {
	if !cfg.RankingLog.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.RankingLog.ClickHouse.Host),
		pkgch.WithPort(cfg.RankingLog.ClickHouse.Port),
		pkgch.WithDatabase(cfg.RankingLog.ClickHouse.Database),
		pkgch.WithCredentials(cfg.RankingLog.ClickHouse.User, cfg.RankingLog.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.RankingLog.ClickHouse.DialTimeout, 10*time.Second, 10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log, err := internalrepo.NewClickHouseRankingLog(ctx, client, cfg.RankingLog.Table)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ranking log: %w", err)
	}
	return log, nil
}

// ProvideMatcher creates the fuzzy matcher used by browse filtering.
func ProvideMatcher() ranking.Matcher {
	return ranking.NewWeightedMatcher()
}

// ProvideRanker creates the hybrid retrieval + scoring use case.
func ProvideRanker(
	catalog *usecase.CatalogHolder,
	sem repository.SemanticSearcher,
	auditLog repository.RankingLog,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Ranker {
	return usecase.NewRanker(catalog, sem, auditLog, m, l, usecase.RankerConfig{
		SemanticTimeout: cfg.Semantic.Timeout,
		DefaultTopK:     cfg.Semantic.TopK,
		FallbackSize:    cfg.Ranking.FallbackSize,
	})
}

// ProvideBrowser creates the catalog listing use case.
func ProvideBrowser(catalog *usecase.CatalogHolder, matcher ranking.Matcher) *usecase.Browser {
	return usecase.NewBrowser(catalog, matcher)
}

// ProvideChat creates the assistant orchestration use case.
func ProvideChat(
	ranker *usecase.Ranker,
	assist repository.Assistant,
	prefs repository.PreferenceStore,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Chat {
	return usecase.NewChat(ranker, assist, prefs, m, l, usecase.ChatConfig{
		ContextSize: cfg.Ranking.ContextSize,
		DefaultRecs: cfg.Ranking.DefaultRecommend,
	})
}

// ProvidePrefs creates the preference use case.
func ProvidePrefs(
	store repository.PreferenceStore,
	pub repository.InteractionPublisher,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.Prefs {
	return usecase.NewPrefs(store, pub, m, l)
}

// ProvideHub creates the catalog refresh websocket hub.
func ProvideHub(l *logger.Logger) *ws.Hub {
	return ws.NewHub(l)
}

// ProvideHTTPHandler creates the Echo route registrar.
func ProvideHTTPHandler(
	l *logger.Logger,
	browser *usecase.Browser,
	ranker *usecase.Ranker,
	chat *usecase.Chat,
	prefs *usecase.Prefs,
) xhttp.Handler {
	return api.NewEventsEchoHandler(l, browser, ranker, chat, prefs)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	catalog *usecase.CatalogHolder,
	hub *ws.Hub,
	handler xhttp.Handler,
	store repository.PreferenceStore,
	pub repository.InteractionPublisher,
	auditLog repository.RankingLog,
) *server.App {
	app := server.New(cfg, l, catalog, hub, handler)
	for _, dep := range []interface{}{store, pub, auditLog} {
		if closer, ok := dep.(io.Closer); ok {
			app.AddCloser(closer)
		}
	}
	return app
}
