package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contre95/hotfolder/src/features/config"
	"github.com/contre95/hotfolder/src/features/hosting"
	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/contre95/hotfolder/src/features/logging"
	"github.com/contre95/hotfolder/src/features/metrics"
	"github.com/contre95/hotfolder/src/infra/engine"
	"github.com/contre95/hotfolder/src/infra/notify"
	"github.com/contre95/hotfolder/src/infra/queue"
	"github.com/contre95/hotfolder/src/infra/watcher"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const drainTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the hot folder service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	cfgManager, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cfgManager.Get()

	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	if err := cfgManager.EnsureDirectories(); err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another hotfolder instance is already running (lock %s)", cfg.LockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("Failed to release lock", "path", cfg.LockPath, "error", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := metrics.NewCollector(promRegistry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	ingestQueue := queue.NewInMemoryQueue()
	engineClient, err := engine.FromConfig(cfg.Engine, ingestQueue)
	if err != nil {
		return err
	}
	if closer, ok := engineClient.(io.Closer); ok {
		defer closer.Close()
	}
	slog.Info("Processing engine configured", "transport", engineClient.Name(), "url", cfg.Engine.URL)

	hub := notify.NewHub(cfg.Watch.EventBuffer)
	sinks := notify.Fanout{hub}

	var telegramAPI *tgbotapi.BotAPI
	if cfg.Telegram.Enabled {
		telegramAPI, err = hosting.NewBotAPI(cfg.Telegram)
		if err != nil {
			slog.Error("Telegram disabled", "error", err)
		} else if cfg.Telegram.Notify && len(cfg.Telegram.ChatIDs) > 0 {
			sinks = append(sinks, notify.NewTelegram(telegramAPI, cfg.Telegram.ChatIDs))
		}
	}

	forwarder := hotfolder.NewEventForwarder(engineClient, sinks, hotfolder.ForwarderOptions{
		Timeout:  cfg.Engine.Timeout(),
		Recorder: collector,
		Logger:   logger,
	})

	registry := hotfolder.NewRegistry(ctx, watcher.NewDetector, forwarder, hotfolder.RegistryOptions{
		DuplicatePolicy:  hotfolder.DuplicatePolicy(cfg.Watch.DuplicatePolicy),
		DefaultStability: cfg.Watch.DefaultStability(),
		EventBuffer:      cfg.Watch.EventBuffer,
		Recorder:         collector,
		Logger:           logger,
	})
	startConfiguredFolders(registry, cfg.HotFolders)

	if telegramAPI != nil {
		bot, err := hosting.NewTelegramBot(cfgManager, telegramAPI, registry)
		if err != nil {
			slog.Error("Telegram bot unavailable", "error", err)
		} else {
			go bot.Start()
			defer bot.Stop()
		}
	}

	server := hosting.NewServer(cfgManager, registry, hub, engineClient, ingestQueue, promRegistry)
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Server.Port)
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case err := <-serverErr:
		if err != nil {
			slog.Error("HTTP server stopped", "error", err)
		}
	}

	registry.Close()
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := forwarder.Wait(drainCtx); err != nil {
		slog.Warn("Forwarder did not drain in time", "error", err)
	}
	hub.Close()
	if err := server.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	return nil
}

// startConfiguredFolders starts every enabled folder from the config file.
// A folder that cannot be watched is logged and skipped.
func startConfiguredFolders(registry *hotfolder.Registry, folders []hotfolder.FolderConfig) {
	for _, folder := range folders {
		if !folder.Enabled {
			slog.Debug("Skipping disabled hot folder", "folder_id", folder.ID)
			continue
		}
		if err := registry.StartWatching(folder); err != nil {
			slog.Error("Failed to start configured hot folder", "folder_id", folder.ID, "path", folder.Path, "error", err)
			continue
		}
		slog.Info("Watching hot folder", "folder_id", folder.ID, "path", folder.Path)
	}
}
