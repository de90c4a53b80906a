// Package domain defines the core entities of the voice command relay.
//
// The domain layer is independent of infrastructure concerns: no adapter
// types, no HTTP, no audio. Everything here is plain data shared between
// the session service and its ports.
package domain

// SystemProfile describes the host OS, distribution and desktop environment.
// It is computed once at startup and embedded verbatim into every synthesis
// prompt so the oracle can bias its output toward the right shell and
// desktop idioms. Read-only for the life of the process.
type SystemProfile string

// SessionState names a position in the per-utterance pipeline. States exist
// for logging and tests; the loop itself is a straight-line function.
type SessionState string

const (
	StateIdle            SessionState = "idle"
	StateListening       SessionState = "listening"
	StateConversational  SessionState = "conversational"
	StateCommandDetected SessionState = "command_detected"
	StateAwaitingConfirm SessionState = "awaiting_confirm"
	StateSynthesizing    SessionState = "synthesizing"
	StateExecuting       SessionState = "executing"
	StateAborted         SessionState = "aborted"
)

// SynthesizedCommand is the structured result of a command-model oracle call.
// It is never executed except after both confirmation gates returned true.
type SynthesizedCommand struct {
	Command string `json:"command"`
}

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Ran        bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	Err        error
}
