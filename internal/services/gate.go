package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/doeshing/vosh/internal/ports"
)

// ConfirmationGate is a yes/no checkpoint that must return true before the
// pipeline advances. The session loop invokes it twice per command cycle.
type ConfirmationGate interface {
	Confirm(ctx context.Context, promptText string, timeout time.Duration) bool
}

// Gate asks for confirmation by voice with a typed fallback.
//
// The gate is fail-closed: any error, timeout, or even a panic somewhere in
// the speech stack resolves to "do not proceed". A spoken response counts
// as approval when it contains "yes" or "run it" (case-insensitive); the
// typed fallback must be exactly "yes".
type Gate struct {
	Transcriber ports.Transcriber // optional, typed fallback when nil
	Speaker     ports.Speaker     // optional
	Prompter    ports.LinePrompter
	Logger      ports.Logger
	Out         io.Writer
}

// Confirm implements ConfirmationGate.
func (g *Gate) Confirm(ctx context.Context, promptText string, timeout time.Duration) (decision bool) {
	defer func() {
		if r := recover(); r != nil {
			g.Logger.Error("confirmation failed, denying", fmt.Errorf("panic: %v", r), nil)
			decision = false
		}
	}()

	g.say(promptText)

	if g.Transcriber != nil {
		res := g.Transcriber.Listen(ctx, timeout)
		if res.OK() {
			g.Logger.Debug("voice confirmation response", map[string]interface{}{"text": res.Text})
			return isAffirmative(res.Text)
		}
		g.Logger.Info("no usable voice response", map[string]interface{}{
			"outcome": string(res.Outcome),
		})
	}

	line, err := g.Prompter.ReadLine("No voice input detected. Type yes or no: ")
	if err != nil {
		g.Logger.Error("fallback input failed, denying", err, nil)
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "yes"
}

func (g *Gate) say(text string) {
	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	if g.Speaker != nil {
		if err := g.Speaker.Speak(text); err != nil {
			g.Logger.Warn("speech output failed", map[string]interface{}{"err": err.Error()})
		}
	}
	fmt.Fprintln(out, text)
}

// isAffirmative applies the fixed phrase-matching rule for spoken replies.
func isAffirmative(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "yes") || strings.Contains(lower, "run it")
}

var _ ConfirmationGate = (*Gate)(nil)
