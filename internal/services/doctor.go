package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/vosh/internal/domain"
)

// CheckResult is one line of doctor output.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

// Doctor verifies that the host has everything the session loop needs.
type Doctor struct {
	Config     domain.Config
	ConfigPath string
	HTTPClient *http.Client
}

// Run executes every environment check and returns the results in a fixed
// order.
func (d *Doctor) Run(ctx context.Context) []CheckResult {
	return []CheckResult{
		d.checkConfig(),
		d.checkBinary("speech output", "espeak-ng"),
		d.checkNotifier(),
		d.checkWhisperModel(),
		d.checkOracle(ctx),
	}
}

func (d *Doctor) checkConfig() CheckResult {
	if _, err := os.Stat(d.ConfigPath); err != nil {
		return CheckResult{Name: "config", Detail: err.Error()}
	}
	return CheckResult{Name: "config", OK: true, Detail: d.ConfigPath}
}

func (d *Doctor) checkBinary(name, binary string) CheckResult {
	path, err := exec.LookPath(binary)
	if err != nil {
		return CheckResult{Name: name, Detail: fmt.Sprintf("%s not found on PATH", binary)}
	}
	return CheckResult{Name: name, OK: true, Detail: path}
}

func (d *Doctor) checkNotifier() CheckResult {
	if !d.Config.Notify.KDEConnect {
		return CheckResult{Name: "notifications", OK: true, Detail: "kdeconnect disabled"}
	}
	return d.checkBinary("notifications", "kdeconnect-cli")
}

func (d *Doctor) checkWhisperModel() CheckResult {
	path := d.Config.Voice.WhisperModel
	if path == "" {
		return CheckResult{Name: "whisper model", Detail: "no model path configured"}
	}
	if _, err := os.Stat(path); err != nil {
		return CheckResult{Name: "whisper model", Detail: err.Error()}
	}
	return CheckResult{Name: "whisper model", OK: true, Detail: path}
}

// checkOracle probes the service root rather than the generate endpoint, so
// the check costs no model inference.
func (d *Doctor) checkOracle(ctx context.Context) CheckResult {
	base, err := url.Parse(d.Config.Oracle.Endpoint)
	if err != nil {
		return CheckResult{Name: "oracle", Detail: err.Error()}
	}
	base.Path = "/"

	client := d.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return CheckResult{Name: "oracle", Detail: err.Error()}
	}
	resp, err := client.Do(req)
	if err != nil {
		return CheckResult{Name: "oracle", Detail: err.Error()}
	}
	resp.Body.Close()
	return CheckResult{Name: "oracle", OK: true, Detail: base.String()}
}
