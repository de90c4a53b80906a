package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/ports"
)

// Gateway is the transcription gateway: one bounded microphone capture
// followed by one whisper pass. It collapses every failure into the
// ListenResult sum type; callers never see a raw error on the control path.
type Gateway struct {
	rec      *Recorder
	model    whisper.Model
	language string
	log      ports.Logger
}

// NewGateway loads the whisper model and initializes audio capture.
func NewGateway(cfg domain.VoiceSettings, log ports.Logger) (*Gateway, error) {
	if cfg.WhisperModel == "" {
		return nil, errors.New("empty whisper model path")
	}

	model, err := whisper.New(cfg.WhisperModel)
	if err != nil {
		return nil, fmt.Errorf("load whisper model: %w", err)
	}

	rec := NewRecorder()
	if err := rec.Init(); err != nil {
		model.Close()
		return nil, fmt.Errorf("init audio: %w", err)
	}

	return &Gateway{
		rec:      rec,
		model:    model,
		language: cfg.Language,
		log:      log,
	}, nil
}

// Listen implements ports.Transcriber.
func (g *Gateway) Listen(ctx context.Context, timeout time.Duration) domain.ListenResult {
	g.log.Info("listening", map[string]interface{}{"timeout": timeout.String()})

	pcm, err := g.rec.Record(timeout)
	if err != nil {
		g.log.Error("audio capture failed", err, nil)
		return domain.ListenResult{Outcome: domain.ListenUnavailable, Err: err}
	}
	if len(pcm) == 0 {
		g.log.Info("no speech detected within window", nil)
		return domain.ListenResult{Outcome: domain.ListenTimeout}
	}

	text, err := g.transcribe(ctx, pcm)
	if err != nil {
		g.log.Error("transcription failed", err, nil)
		return domain.ListenResult{Outcome: domain.ListenUnavailable, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		g.log.Info("could not understand the audio", nil)
		return domain.ListenResult{Outcome: domain.ListenUnintelligible}
	}

	g.log.Info("transcribed", map[string]interface{}{"text": text})
	return domain.ListenResult{Outcome: domain.ListenOK, Text: text}
}

func (g *Gateway) transcribe(ctx context.Context, pcm []float32) (string, error) {
	wctx, err := g.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("new whisper context: %w", err)
	}

	lang := g.language
	if lang == "" {
		lang = "auto"
	}
	if err := wctx.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	wctx.SetThreads(uint(runtime.NumCPU()))

	if err := wctx.Process(pcm, nil, nil, nil); err != nil {
		return "", fmt.Errorf("process: %w", err)
	}

	var parts []string
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		segment, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("next segment: %w", err)
		}
		parts = append(parts, segment.Text)
	}

	return strings.Join(parts, " "), nil
}

// Close releases the whisper model and the audio device.
func (g *Gateway) Close() error {
	g.rec.Close()
	if g.model == nil {
		return nil
	}
	return g.model.Close()
}

var _ ports.Transcriber = (*Gateway)(nil)
