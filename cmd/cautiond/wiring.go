package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socialcaution/cautiond/internal/catalog"
	"github.com/socialcaution/cautiond/internal/config"
	"github.com/socialcaution/cautiond/internal/feed"
	"github.com/socialcaution/cautiond/internal/session"
)

// app bundles the wired pieces a CLI command needs.
type app struct {
	cfg config.Config
	svc *feed.Service
}

// newApp loads config, catalogs, and the session store, and wires the query
// layer. CLI commands run without the artificial latency when
// simulateLatency is false; only the served API fakes network round-trips.
func newApp(cmd *cobra.Command, simulateLatency bool) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Catalog.PersonasFile, cfg.Catalog.CautionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}

	store, err := session.NewFileStore(cfg.Storage.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	svcCfg := feed.Config{}
	if simulateLatency {
		svcCfg.Latency = cfg.API.Latency()
	}

	return &app{
		cfg: cfg,
		svc: feed.NewService(cat, store, svcCfg),
	}, nil
}
