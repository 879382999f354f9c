package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	httpContracts "github.com/socialcaution/cautiond/internal/http"
)

const (
	appName = "cautiond"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	httpContracts.InitializeMetrics()

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "SocialCaution demo API: persona-scoped privacy caution feed",
		Version: version,
		Long: `cautiond serves the SocialCaution caution feed: a static catalog of
privacy/security caution items personalized by a selected persona, with the
selection persisted locally. It is the stand-in for a real backend used by
the SocialCaution demo site.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (defaults apply when omitted)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPersonaCmd())
	rootCmd.AddCommand(newCautionsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newCategoriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
