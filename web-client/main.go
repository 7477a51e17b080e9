package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/arunvm123/bookingportal/web-client/config"
	"github.com/arunvm123/bookingportal/web-client/confirm"
	"github.com/arunvm123/bookingportal/web-client/portal"
	httpservice "github.com/arunvm123/bookingportal/web-client/service/http"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.String("config", "config.yaml", "path to the YAML config file")
	apiURL := pflag.String("api-url", "", "booking API base URL (overrides config)")
	backend := pflag.String("token-store", "", "token store backend: file, redis or memory (overrides config)")
	stateDir := pflag.String("state-dir", "", "directory for the file token store (overrides config)")
	logLevel := pflag.String("log-level", "", "log level: debug, info, warn or error (overrides config)")
	assumeYes := pflag.Bool("yes", false, "answer yes to every confirmation prompt")
	pflag.Parse()

	// Try to load from config.yaml first, fallback to environment variables
	cfg, err := config.Initialise(*configPath, false)
	if err != nil {
		log.Printf("Config file not found or invalid, using environment variables: %v", err)
		cfg, err = config.Initialise("", true)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *backend != "" {
		cfg.TokenStore.Backend = *backend
	}
	if *stateDir != "" {
		cfg.TokenStore.StateDir = *stateDir
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := newLogger(os.Stderr, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := portal.NewTokenStore(ctx, &cfg.TokenStore)
	if err != nil {
		logger.Error("failed to initialise token store", "backend", cfg.TokenStore.Backend, "error", err)
		os.Exit(1)
	}

	in := bufio.NewReader(os.Stdin)
	var gate confirm.Gate = confirm.NewTerminalGate(in, os.Stdout)
	if *assumeYes {
		gate = confirm.Always(true)
	}

	api := httpservice.NewAPIClientWithConfig(&cfg.API, logger.With("component", "api"))
	p := portal.New(api, store, gate, logger)

	sh := newShell(p, in, os.Stdout)
	fmt.Fprintf(os.Stdout, "Event booking portal (%s). Type \"help\" for commands.\n", cfg.API.BaseURL)
	if err := sh.Run(ctx); err != nil {
		logger.Error("shell exited", "error", err)
		os.Exit(1)
	}
}
