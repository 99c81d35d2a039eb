package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aleister1102/livereload/internal/activation"
	"github.com/aleister1102/livereload/internal/browser"
	"github.com/aleister1102/livereload/internal/config"
	"github.com/aleister1102/livereload/internal/document"
	"github.com/aleister1102/livereload/internal/httpclient"
	"github.com/aleister1102/livereload/internal/logger"
	"github.com/aleister1102/livereload/internal/monitor"
	"github.com/aleister1102/livereload/internal/preference"

	"github.com/rs/zerolog"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}
	if flags.Driver != "" {
		gCfg.BrowserConfig.Driver = flags.Driver
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Failed to initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	store, err := preference.NewStore(gCfg.StorageConfig.SQLiteDBPath, zLogger)
	if err != nil {
		fmt.Fprintln(os.Stderr, activation.ErrorNotice("Could not open the preference store"))
		zLogger.Fatal().Err(err).Msg("Failed to open preference store")
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := run(ctx, flags, gCfg, store, os.Stdout, zLogger); err != nil {
		zLogger.Error().Err(err).Str("command", flags.Command).Msg("Command failed")
		store.Close()
		os.Exit(1)
	}
}

// run executes one command. Everything but watch touches only the store.
func run(ctx context.Context, flags AppFlags, gCfg *config.GlobalConfig, store *preference.Store, out io.Writer, zLogger zerolog.Logger) error {
	switch flags.Command {
	case cmdWatch:
		return runWatch(ctx, flags, gCfg, store, zLogger)
	case cmdList:
		prefs, err := store.List(ctx)
		if err != nil {
			fmt.Fprintln(out, activation.ErrorNotice("Could not read stored preferences"))
			return err
		}
		for _, p := range prefs {
			fmt.Fprintln(out, activation.StatusMessage(p.Port, p.Enabled))
		}
		return nil
	}

	port := portOf(flags.Target)

	switch flags.Command {
	case cmdStatus:
		enabled, err := store.Enabled(ctx, port)
		if err != nil {
			fmt.Fprintln(out, activation.ErrorNotice("Could not read the live reload preference"))
			return err
		}
		fmt.Fprintln(out, activation.StatusMessage(port, enabled))
	case cmdEnable, cmdDisable:
		enabled := flags.Command == cmdEnable
		if err := store.SetEnabled(ctx, port, enabled); err != nil {
			fmt.Fprintln(out, activation.ErrorNotice("Could not save the live reload preference"))
			return err
		}
		fmt.Fprintln(out, toggledMessage(port, enabled))
	case cmdToggle:
		enabled, err := store.Toggle(ctx, port)
		if err != nil {
			fmt.Fprintln(out, activation.ErrorNotice("Could not save the live reload preference"))
			return err
		}
		fmt.Fprintln(out, toggledMessage(port, enabled))
	}
	return nil
}

func toggledMessage(port string, enabled bool) string {
	if enabled {
		return activation.EnabledMessage(port)
	}
	return activation.DisabledMessage(port)
}

func runWatch(ctx context.Context, flags AppFlags, gCfg *config.GlobalConfig, store *preference.Store, zLogger zerolog.Logger) error {
	pageURL := flags.Target
	port := preference.PortOf(pageURL)

	client, err := httpclient.NewHTTPClientBuilder(zLogger).WithAppConfig(gCfg.HTTPClientConfig).Build()
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	if flags.EnableOnStart {
		if err := store.SetEnabled(ctx, port, true); err != nil {
			fmt.Fprintln(os.Stderr, activation.ErrorNotice("Could not save the live reload preference"))
			zLogger.Warn().Err(err).Str("port", port).Msg("Failed to store enable flag")
		}
	}

	doc, closeDoc, err := openDocument(ctx, gCfg.BrowserConfig, pageURL, client, zLogger)
	if err != nil {
		return err
	}
	defer closeDoc()

	controller := activation.NewController(port, func() activation.Engine {
		return monitor.NewEngine(doc, client, gCfg.MonitorConfig, zLogger)
	}, store, gCfg.ActivationConfig.PollInterval(), os.Stderr, zLogger)

	zLogger.Info().Str("page", pageURL).Str("port", port).Str("driver", gCfg.BrowserConfig.Driver).Msg("Watching page")

	if err := controller.Follow(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openDocument returns the page to monitor and a func that releases it.
func openDocument(ctx context.Context, cfg config.BrowserConfig, pageURL string, client *httpclient.HTTPClient, zLogger zerolog.Logger) (document.Document, func(), error) {
	if strings.EqualFold(cfg.Driver, config.DriverStatic) {
		return document.NewStaticDocument(pageURL, client, zLogger), func() {}, nil
	}

	manager := browser.NewManager(cfg, zLogger)
	if err := manager.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}
	page, err := manager.OpenPage(ctx, pageURL)
	if err != nil {
		manager.Close()
		return nil, nil, fmt.Errorf("failed to open page: %w", err)
	}
	return document.NewRodDocument(page, zLogger), manager.Close, nil
}
