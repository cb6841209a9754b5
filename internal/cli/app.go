// Package cli implements trieplace's cobra command tree (component J),
// styled after dphaener-conduit's cmd/conduit/main.go and
// internal/cli/commands/root.go.
package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/trieplace/trieplace/internal/cache"
	"github.com/trieplace/trieplace/internal/config"
	"github.com/trieplace/trieplace/internal/dict"
	"github.com/trieplace/trieplace/internal/store"
	"github.com/trieplace/trieplace/internal/token"
)

// App bundles the dependencies every subcommand needs. A *store.Store is
// only present when config.Store.DSN is set; otherwise commands operate
// against an in-memory-only Dict.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Tokenizer  token.Tokenizer
	Dict       *dict.Dict[string]
	Store      *store.Store
	RegexCache *cache.RegexCache
	Fs         afero.Fs
}

// NewApp wires an App from cfg: resolves the tokenizer, opens the SQLite
// store when configured (hydrating its in-memory dict), and falls back to
// an empty in-memory Dict otherwise.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	tok, err := resolveTokenizer(cfg.Tokenizer.Kind)
	if err != nil {
		return nil, err
	}

	regexCache, err := cache.NewRegexCache(cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("build regex cache: %w", err)
	}

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Tokenizer:  tok,
		RegexCache: regexCache,
		Fs:         afero.NewOsFs(),
	}

	if cfg.Store.DSN != "" {
		s, err := store.Open(cfg.Store.DSN, tok, func(done int) {
			logger.Info("hydrating dictionary", zap.Int("rows", done))
		})
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		app.Store = s
		app.Dict = s.Dict()
	} else {
		app.Dict = dict.New[string](tok)
	}

	return app, nil
}

// Close releases any resources App owns.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Insert writes key/value through the store when one is configured, or
// directly into the in-memory dict otherwise.
func (a *App) Insert(key, value string) error {
	if a.Store != nil {
		return a.Store.Set(key, value, 0)
	}
	return a.Dict.Insert(key, value)
}

// Pop removes key through the store when one is configured, or directly
// from the in-memory dict otherwise.
func (a *App) Pop(key string) (string, error) {
	if a.Store != nil {
		return a.Store.Delete(key)
	}
	return a.Dict.Pop(key)
}

func resolveTokenizer(kind string) (token.Tokenizer, error) {
	switch kind {
	case "identity":
		return token.Identity{}, nil
	case "space", "":
		return token.Space{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer kind: %s", kind)
	}
}
