// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/infrastructure/ai"
	"github.com/doeshing/vosh/internal/infrastructure/classifier"
	"github.com/doeshing/vosh/internal/infrastructure/config"
	"github.com/doeshing/vosh/internal/infrastructure/executor"
	"github.com/doeshing/vosh/internal/infrastructure/history"
	"github.com/doeshing/vosh/internal/infrastructure/notify"
	"github.com/doeshing/vosh/internal/infrastructure/profile"
	"github.com/doeshing/vosh/internal/pkg/logger"
	"github.com/doeshing/vosh/internal/ports"
	"github.com/doeshing/vosh/internal/services"
)

// Container holds the dependency graph shared by all commands. Voice
// adapters (microphone, playback) are attached later by the commands that
// actually need hardware.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	Logger       ports.Logger
	Profile      domain.SystemProfile
	Session      *services.Session
	Doctor       *services.Doctor
	History      ports.HistoryRepository
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := logger.NewTint(os.Stderr, level)

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	oracle, err := ai.NewClient(cfg.Oracle, log)
	if err != nil {
		return nil, err
	}

	var store ports.HistoryRepository
	if cfg.History.Enabled {
		store = history.NewSQLiteStore(cfg.History.Path)
	}

	var notifiers []ports.Notifier
	if cfg.Notify.KDEConnect {
		notifiers = append(notifiers, notify.NewKDEConnect(log))
	}
	if cfg.Notify.CompanionURL != "" {
		notifiers = append(notifiers, notify.NewCompanion(cfg.Notify.CompanionURL, log))
	}

	systemProfile := profile.Collect()

	session := &services.Session{
		Config:    cfg,
		Profile:   systemProfile,
		Detector:  classifier.NewKeyword(log),
		Oracle:    oracle,
		Executor:  executor.NewLocal(log),
		Notifiers: notifiers,
		History:   store,
		Logger:    log,
	}

	doctor := &services.Doctor{
		Config:     cfg,
		ConfigPath: cfgLoader.Path(),
	}

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Logger:       log,
		Profile:      systemProfile,
		Session:      session,
		Doctor:       doctor,
		History:      store,
	}, nil
}
