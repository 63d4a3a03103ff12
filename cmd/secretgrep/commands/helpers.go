package commands

import (
	"github.com/systmms/secretgrep/internal/config"
	"github.com/systmms/secretgrep/internal/kv"
	"github.com/systmms/secretgrep/internal/render"
	"github.com/systmms/secretgrep/internal/stores"
	"github.com/systmms/secretgrep/pkg/store"
)

// setup loads the config, resolves the selected store, and builds its
// client. Every command starts here.
func setup(cfg *config.Config) (store.Client, config.StoreConfig, render.Format, error) {
	if err := cfg.Load(); err != nil {
		return nil, config.StoreConfig{}, "", err
	}

	format, err := render.ParseFormat(cfg.OutputFormat())
	if err != nil {
		return nil, config.StoreConfig{}, "", err
	}

	name, storeCfg, err := cfg.SelectStore()
	if err != nil {
		return nil, config.StoreConfig{}, "", err
	}

	client, err := buildClient(cfg, name, storeCfg)
	if err != nil {
		return nil, config.StoreConfig{}, "", err
	}
	return client, storeCfg, format, nil
}

// buildClient constructs the store client, honoring the test override on
// Config.
func buildClient(cfg *config.Config, name string, storeCfg config.StoreConfig) (store.Client, error) {
	if cfg.NewClient != nil {
		return cfg.NewClient(name, storeCfg, cfg.Logger)
	}
	return stores.New(name, storeCfg, cfg.Logger)
}

// newFetcher wires the per-fetch timeout from the store config into a
// fetcher.
func newFetcher(cfg *config.Config, client store.Client, storeCfg config.StoreConfig) *kv.Fetcher {
	var opts []kv.FetcherOption
	if timeout := storeCfg.Timeout(); timeout > 0 {
		opts = append(opts, kv.WithTimeout(timeout))
	}
	return kv.NewFetcher(client, cfg.Logger, opts...)
}
