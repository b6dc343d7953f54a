package cli

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/reposcout/reposcout/internal/config"
	"github.com/reposcout/reposcout/pkg/cache"
	"github.com/reposcout/reposcout/pkg/gitcmd"
	"github.com/reposcout/reposcout/pkg/history"
	"github.com/reposcout/reposcout/pkg/integrations/github"
	"github.com/reposcout/reposcout/pkg/integrations/llm"
	"github.com/reposcout/reposcout/pkg/scout"
	"github.com/reposcout/reposcout/pkg/template"
)

// newHTTPCache builds the response cache selected by the config. Backend
// failures fall back to no caching rather than aborting the command.
func newHTTPCache(ctx context.Context, cfg config.Config, logger *log.Logger) cache.Cache {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			logger.Warn("redis cache unavailable, continuing without caching", "error", err)
			return cache.NewNullCache()
		}
		return c
	default:
		c, err := cache.NewFileCache(httpCacheDir(cfg))
		if err != nil {
			logger.Warn("file cache unavailable, continuing without caching", "error", err)
			return cache.NewNullCache()
		}
		return c
	}
}

func httpCacheDir(cfg config.Config) string {
	return filepath.Join(cfg.CacheDir, "http")
}

func templateCacheDir(cfg config.Config) string {
	return filepath.Join(cfg.CacheDir, "templates")
}

func newGit(cfg config.Config) *gitcmd.CLI {
	git := gitcmd.NewCLI()
	if t := cfg.Git.Timeout(); t > 0 {
		git.Timeout = t
	}
	return git
}

// newRunner assembles the ranking pipeline from the config. The adjudicator
// stays disabled without an API key and the runner degrades accordingly.
func newRunner(ctx context.Context, cfg config.Config, logger *log.Logger) *scout.Runner {
	httpCache := newHTTPCache(ctx, cfg, logger)
	search := github.NewClient(cfg.Search.Token, httpCache, cfg.Cache.TTL())

	var adjudicator *scout.Adjudicator
	if cfg.LLM.APIKey != "" {
		client := llm.NewClient(llm.Config{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout(),
		})
		adjudicator = scout.NewAdjudicator(client, logger)
	} else {
		logger.Debug("no model API key configured, adjudication disabled")
	}

	fetcher := template.NewFetcher(newGit(cfg), logger)

	return &scout.Runner{
		Source:      scout.NewSource(search, cfg.Search.Language, logger),
		Scorer:      scout.NewScorer(nil),
		Inspector:   scout.NewInspector(scout.FileFetcherFunc(fetcher.FetchFiles), logger),
		Adjudicator: adjudicator,
		Logger:      logger,
	}
}

// newTemplateStore loads the registry and opens the artifact store.
func newTemplateStore(cfg config.Config, logger *log.Logger) (*template.Store, error) {
	registry, err := template.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		return nil, err
	}
	return template.NewStore(registry, templateCacheDir(cfg), newGit(cfg), logger)
}

// newHistoryStore opens the configured run-history backend. Without a Mongo
// URI runs are only kept for the lifetime of the process.
func newHistoryStore(ctx context.Context, cfg config.Config, logger *log.Logger) history.Store {
	if cfg.History.MongoURI == "" {
		return history.NewMemoryStore(0)
	}
	store, err := history.NewMongoStore(ctx, cfg.History.MongoURI, cfg.History.Database, cfg.History.Collection)
	if err != nil {
		logger.Warn("history database unavailable, keeping runs in memory", "error", err)
		return history.NewMemoryStore(0)
	}
	return store
}
