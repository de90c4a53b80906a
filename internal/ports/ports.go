// Package ports defines the interfaces between the session core and its
// external collaborators.
//
// The core treats every collaborator as narrow and fallible: the oracle may
// return garbage or nothing, the microphone may hear nothing, playback may
// fail. Adapters live in the infrastructure layer; the session service only
// ever sees these contracts.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/vosh/internal/domain"
)

// ConfigProvider loads the configuration from persistent storage.
// Implementations typically read ~/.vosh/config.yaml once at startup.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Transcriber is the transcription gateway: it captures audio for at most
// the given timeout and returns a sum-typed result. Implementations must
// never block longer than the timeout plus transcription time.
type Transcriber interface {
	Listen(ctx context.Context, timeout time.Duration) domain.ListenResult
	Close() error
}

// Speaker converts text to audible speech, blocking until playback
// completes. There is no cancellation; consecutive calls are serialized by
// the single-threaded session loop.
type Speaker interface {
	Speak(text string) error
}

// Oracle is the natural-language model service. It is untrusted and
// possibly wrong: callers must validate anything that comes back before
// acting on it. A transport or HTTP failure is returned as an error and
// treated by callers as "no result".
type Oracle interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// CommandDetector decides whether an utterance is actionable. The default
// policy is a fixed keyword list; the interface exists so the policy can be
// replaced without touching the loop.
type CommandDetector interface {
	Detect(text string) bool
}

// CommandExecutor runs an approved command as a child process and waits for
// it to finish.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// Notifier pushes a candidate command to a companion device for visual
// inspection. Strictly best-effort: failures are logged and ignored.
type Notifier interface {
	Push(text string) error
	Enabled() bool
}

// ListenCue plays a short audible cue right before the microphone opens.
type ListenCue interface {
	Play() error
}

// LinePrompter reads one line of typed input, used as the fallback when the
// confirmation gate hears nothing.
type LinePrompter interface {
	ReadLine(prompt string) (string, error)
}

// HistoryRepository persists command-cycle records.
type HistoryRepository interface {
	Save(record domain.CycleRecord) error
	Records(limit int, search string) ([]domain.CycleRecord, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
