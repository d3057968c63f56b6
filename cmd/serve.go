package cmd

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/campus-fund-tracker/internal/api"
	"github.com/insightdelivered/campus-fund-tracker/internal/auth"
	"github.com/insightdelivered/campus-fund-tracker/internal/config"
	"github.com/insightdelivered/campus-fund-tracker/internal/roster"
	"github.com/insightdelivered/campus-fund-tracker/internal/sheet"
)

var listenFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if listenFlag != "" {
		cfg.ListenAddr = listenFlag
	}

	store := roster.NewStore()
	fetcher := sheet.NewHTTPFetcher(cfg.SheetURL, cfg.FetchTimeout())
	tokens := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL())
	lockouts := auth.NewLockoutTracker(cfg.MaxLoginAttempts, cfg.LockoutWindow())

	h := api.New(cfg, store, fetcher, tokens, lockouts)
	app := api.NewApp(h)

	// Warm the roster so the first request does not pay for the fetch.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout())
	defer cancel()
	if info, err := h.LoadRoster(ctx, time.Now()); err != nil {
		log.Printf("initial roster load failed: %v", err)
	} else {
		log.Printf("roster loaded: %d records from %s (load %s)", info.Count, info.Source, info.ID)
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	return app.Listen(cfg.ListenAddr)
}
