// Package config loads the YAML configuration file.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/pkg/filesystem"
	"github.com/doeshing/vosh/internal/ports"
)

// FileLoader loads YAML configuration from ~/.vosh/config.yaml (overridable
// via VOSH_CONFIG or an explicit path).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is not an error: the
// defaults are written out and returned.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path reports the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("VOSH_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".vosh", "config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Oracle: domain.OracleSettings{
			Endpoint:            "http://localhost:11434/api/generate",
			ConversationalModel: "llama3.2:3b",
			CommandModel:        "qwen2.5-coder:3b",
			TimeoutSeconds:      60,
		},
		Voice: domain.VoiceSettings{
			WhisperModel:  filepath.Join(filesystem.UserHomeDir(), ".vosh", "models", "ggml-base.en.bin"),
			Language:      "auto",
			EspeakVoice:   "en",
			EspeakRate:    170,
			ListenSeconds: 15,
		},
		Confirm: domain.ConfirmSettings{
			DetectTimeoutSeconds:  15,
			ExecuteTimeoutSeconds: 5,
		},
		Session: domain.SessionSettings{
			CooldownSeconds: 3,
		},
		Notify: domain.NotifySettings{
			KDEConnect: true,
		},
		History: domain.HistorySettings{
			Enabled: true,
			Path:    filepath.Join(filesystem.UserHomeDir(), ".vosh", "history", "cycles.db"),
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Oracle.Endpoint == "" {
		cfg.Oracle.Endpoint = "http://localhost:11434/api/generate"
	}
	if cfg.Oracle.TimeoutSeconds == 0 {
		cfg.Oracle.TimeoutSeconds = 60
	}
	if cfg.Voice.Language == "" {
		cfg.Voice.Language = "auto"
	}
	if cfg.Voice.EspeakRate == 0 {
		cfg.Voice.EspeakRate = 170
	}
	if cfg.Voice.ListenSeconds == 0 {
		cfg.Voice.ListenSeconds = 15
	}
	if cfg.Confirm.DetectTimeoutSeconds == 0 {
		cfg.Confirm.DetectTimeoutSeconds = 15
	}
	if cfg.Confirm.ExecuteTimeoutSeconds == 0 {
		cfg.Confirm.ExecuteTimeoutSeconds = 5
	}
	if cfg.Session.CooldownSeconds == 0 {
		cfg.Session.CooldownSeconds = 3
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(filesystem.UserHomeDir(), ".vosh", "history", "cycles.db")
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
