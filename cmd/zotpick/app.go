package main

import (
	"errors"
	"path/filepath"

	"github.com/matsen/zotpick/internal/cache"
	"github.com/matsen/zotpick/internal/config"
	"github.com/matsen/zotpick/internal/query"
	"github.com/matsen/zotpick/internal/snapshot"
	"github.com/matsen/zotpick/internal/zotero"
)

// app bundles the loaded config with the reference pipeline. All
// mutable state lives here and is passed down explicitly; the internal
// packages keep no ambient state.
type app struct {
	cfg   *config.Config
	snap  *snapshot.Manager
	cache *cache.Cache
}

// newApp loads the config and wires snapshot → query → extractor → cache.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	snap := snapshot.NewManager(cfg.ZoteroDB, cfg.CacheDir)
	extractor := zotero.New(query.NewRunner(snap))
	c := cache.New(extractor, filepath.Join(cfg.CacheDir, cache.CacheFile), cfg.CacheTTL())

	return &app{cfg: cfg, snap: snap, cache: c}, nil
}

// mustApp builds the app or exits with a config error.
func mustApp() *app {
	a, err := newApp()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return a
}

// exitCodeFor maps pipeline errors to exit codes.
func exitCodeFor(err error) int {
	if errors.Is(err, snapshot.ErrSourceNotFound) {
		return ExitConfigError
	}
	return ExitError
}
