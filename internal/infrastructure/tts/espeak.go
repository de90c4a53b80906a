// Package tts provides blocking speech output via espeak-ng.
package tts

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/ports"
)

const defaultBinary = "espeak-ng"

// Espeak speaks text by invoking the espeak-ng binary and waiting for
// playback to finish. There is no cancellation; the single-threaded session
// loop serializes consecutive calls.
type Espeak struct {
	binary string
	voice  string
	rate   int
	log    ports.Logger
}

// NewEspeak builds a speaker from the voice settings.
func NewEspeak(cfg domain.VoiceSettings, log ports.Logger) *Espeak {
	return &Espeak{
		binary: defaultBinary,
		voice:  cfg.EspeakVoice,
		rate:   cfg.EspeakRate,
		log:    log,
	}
}

// Speak implements ports.Speaker. Empty text is a no-op.
func (e *Espeak) Speak(text string) error {
	if text == "" {
		return nil
	}

	args := []string{}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	if e.rate > 0 {
		args = append(args, "-s", strconv.Itoa(e.rate))
	}
	args = append(args, "--", text)

	if err := exec.Command(e.binary, args...).Run(); err != nil {
		return fmt.Errorf("%s: %w", e.binary, err)
	}
	return nil
}

// Available reports whether the espeak-ng binary is on PATH.
func (e *Espeak) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

var _ ports.Speaker = (*Espeak)(nil)
