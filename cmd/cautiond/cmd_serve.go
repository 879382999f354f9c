package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/socialcaution/cautiond/internal/catalog"
	"github.com/socialcaution/cautiond/internal/config"
	"github.com/socialcaution/cautiond/internal/feed"
	httpContracts "github.com/socialcaution/cautiond/internal/http"
	httpserver "github.com/socialcaution/cautiond/internal/interfaces/http"
	"github.com/socialcaution/cautiond/internal/session"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the caution API over HTTP",
		Long:  "Serves the local-only JSON API the SocialCaution site uses in place of a real backend.",
		RunE:  runServe,
	}
	cmd.Flags().Bool("ephemeral", false, "Keep the session in memory only (persona selection does not survive restarts)")
	cmd.Flags().Int("port", 0, "Override the configured HTTP port")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	ephemeral, _ := cmd.Flags().GetBool("ephemeral")
	portOverride, _ := cmd.Flags().GetInt("port")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portOverride > 0 {
		cfg.Server.Port = portOverride
	}

	cat, err := catalog.Load(cfg.Catalog.PersonasFile, cfg.Catalog.CautionsFile)
	if err != nil {
		return err
	}
	log.Info().
		Int("personas", len(cat.Personas())).
		Int("cautions", cat.Size()).
		Msg("Catalogs loaded")

	var store session.Store
	sessionHealth := httpContracts.SessionHealth{Backend: "memory"}
	if ephemeral {
		store = session.NewMemStore()
	} else {
		fileStore, err := session.NewFileStore(cfg.Storage.SessionFile)
		if err != nil {
			return err
		}
		store = fileStore
		sessionHealth = httpContracts.SessionHealth{Backend: "file", Path: fileStore.Path()}
	}

	svc := feed.NewService(cat, store, feed.Config{Latency: cfg.API.Latency()})

	serverCfg := httpserver.DefaultServerConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	serverCfg.ReadTimeout = time.Duration(cfg.Server.ReadTimeoutSec) * time.Second
	serverCfg.WriteTimeout = time.Duration(cfg.Server.WriteTimeoutSec) * time.Second
	serverCfg.IdleTimeout = time.Duration(cfg.Server.IdleTimeoutSec) * time.Second
	serverCfg.RateRPS = cfg.API.RateRPS
	serverCfg.RateBurst = cfg.API.RateBurst

	server, err := httpserver.NewServer(serverCfg, svc, version, sessionHealth)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
