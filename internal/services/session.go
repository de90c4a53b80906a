// Package services contains the session core: the per-utterance state
// machine, the confirmation gate, and the command synthesis logic.
package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/ports"
)

// Fixed gate prompts, spoken before each confirmation listen window.
const (
	detectPrompt  = "Command detected. Do you want to issue this command? Please say yes or no."
	executePrompt = "Do you want to execute the above command? Please say yes or no."
)

// Session orchestrates the end-to-end protocol: listen, classify, gate,
// synthesize, gate again, execute. Strictly sequential; one utterance is
// processed fully before the next listen window opens.
type Session struct {
	Config  domain.Config
	Profile domain.SystemProfile

	Transcriber ports.Transcriber
	Speaker     ports.Speaker
	Detector    ports.CommandDetector
	Oracle      ports.Oracle
	Gate        ConfirmationGate
	Executor    ports.CommandExecutor
	Notifiers   []ports.Notifier
	Cue         ports.ListenCue
	History     ports.HistoryRepository
	Logger      ports.Logger

	Out io.Writer

	// Sleep is the cooldown primitive, replaceable in tests.
	Sleep func(time.Duration)
}

// Run loops forever, pulling one utterance at a time. There is no graceful
// shutdown path beyond context cancellation between iterations; the process
// normally runs until externally killed.
func (s *Session) Run(ctx context.Context) error {
	if err := s.checkDeps(); err != nil {
		return err
	}
	s.Logger.Info("voice command interface started", map[string]interface{}{
		"profile": string(s.Profile),
	})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.RunOnce(ctx)
	}
}

// RunOnce processes a single listen cycle: at most one utterance, fully.
func (s *Session) RunOnce(ctx context.Context) {
	s.playCue()

	res := s.Transcriber.Listen(ctx, s.listenTimeout())
	if !res.OK() {
		// A missed or garbled capture costs nothing but another cycle.
		s.Logger.Debug("listen cycle produced no utterance", map[string]interface{}{
			"state":   string(domain.StateListening),
			"outcome": string(res.Outcome),
		})
		return
	}

	s.HandleUtterance(ctx, res.Text)
}

// HandleUtterance routes one transcribed utterance through the pipeline.
// Exposed so the typed entry point can feed the same protocol without a
// microphone.
func (s *Session) HandleUtterance(ctx context.Context, utterance string) {
	if s.Detector.Detect(utterance) {
		s.Logger.Info("command detected", map[string]interface{}{
			"state":     string(domain.StateCommandDetected),
			"utterance": utterance,
		})
		s.runCommandCycle(ctx, utterance)
		s.cooldown()
		return
	}

	s.converse(ctx, utterance)
}

// converse handles the non-actionable branch: one conversational oracle
// call, reply spoken and printed, no retry.
func (s *Session) converse(ctx context.Context, utterance string) {
	s.Logger.Debug("conversational branch", map[string]interface{}{
		"state": string(domain.StateConversational),
	})

	reply, err := s.Oracle.Generate(ctx, s.Config.Oracle.ConversationalModel, utterance)
	if err != nil || reply == "" {
		s.Logger.Warn("no valid response from the conversational model", fieldsForErr(err))
		return
	}

	s.say(reply)
}

// runCommandCycle is the double-confirmed command pipeline. Every exit path
// returns the loop to listening; nothing in here is fatal.
func (s *Session) runCommandCycle(ctx context.Context, utterance string) {
	record := domain.CycleRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Utterance: utterance,
	}
	defer s.saveRecord(&record)

	if !s.Gate.Confirm(ctx, detectPrompt, s.detectTimeout()) {
		s.Logger.Info("command not confirmed", map[string]interface{}{
			"state": string(domain.StateAborted),
		})
		return
	}

	s.Logger.Debug("synthesizing command", map[string]interface{}{
		"state": string(domain.StateSynthesizing),
	})
	cmd, ok := s.synthesize(ctx, utterance)
	if !ok {
		s.say("Could not generate a valid command.")
		return
	}
	record.Command = cmd.Command

	s.say("Proposed command: " + cmd.Command)
	s.pushToCompanions(cmd.Command)

	if summary := s.summarize(ctx, cmd.Command); summary != "" {
		record.Summary = summary
		s.say("Summary: " + summary)
	} else {
		s.Logger.Info("no summary generated", nil)
	}

	if !s.Gate.Confirm(ctx, executePrompt, s.executeTimeout()) {
		s.Logger.Info("command execution canceled", map[string]interface{}{
			"state": string(domain.StateAborted),
		})
		return
	}
	record.Confirmed = true

	s.Logger.Info("executing", map[string]interface{}{
		"state":   string(domain.StateExecuting),
		"command": cmd.Command,
	})
	result, err := s.Executor.Execute(ctx, cmd.Command)
	record.Executed = true
	record.Success = err == nil
	record.ExitCode = result.ExitCode
	record.DurationMS = result.DurationMS

	if err != nil {
		// Already logged by the executor; the loop just moves on.
		return
	}
	s.print("Command executed successfully.")
}

// pushToCompanions mirrors the candidate command to every enabled side
// channel, best-effort.
func (s *Session) pushToCompanions(command string) {
	for _, notifier := range s.Notifiers {
		if notifier == nil || !notifier.Enabled() {
			continue
		}
		if err := notifier.Push(command); err != nil {
			s.Logger.Warn("notification push failed", map[string]interface{}{"err": err.Error()})
		}
	}
}

func (s *Session) saveRecord(record *domain.CycleRecord) {
	if s.History == nil {
		return
	}
	if err := s.History.Save(*record); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"err": err.Error()})
	}
}

// say speaks and prints the text; playback failures only warn.
func (s *Session) say(text string) {
	if s.Speaker != nil {
		if err := s.Speaker.Speak(text); err != nil {
			s.Logger.Warn("speech output failed", map[string]interface{}{"err": err.Error()})
		}
	}
	s.print(text)
}

func (s *Session) print(text string) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, text)
}

func (s *Session) playCue() {
	if s.Cue == nil {
		return
	}
	if err := s.Cue.Play(); err != nil {
		s.Logger.Debug("listen cue failed", map[string]interface{}{"err": err.Error()})
	}
}

// cooldown lets synthesized speech finish before the microphone reopens.
func (s *Session) cooldown() {
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	d := domain.DefaultCooldown
	if s.Config.Session.CooldownSeconds > 0 {
		d = time.Duration(s.Config.Session.CooldownSeconds) * time.Second
	}
	sleep(d)
}

func (s *Session) listenTimeout() time.Duration {
	if s.Config.Voice.ListenSeconds > 0 {
		return time.Duration(s.Config.Voice.ListenSeconds) * time.Second
	}
	return domain.DefaultListenTimeout
}

func (s *Session) detectTimeout() time.Duration {
	if s.Config.Confirm.DetectTimeoutSeconds > 0 {
		return time.Duration(s.Config.Confirm.DetectTimeoutSeconds) * time.Second
	}
	return domain.DefaultDetectConfirmTimeout
}

func (s *Session) executeTimeout() time.Duration {
	if s.Config.Confirm.ExecuteTimeoutSeconds > 0 {
		return time.Duration(s.Config.Confirm.ExecuteTimeoutSeconds) * time.Second
	}
	return domain.DefaultExecuteConfirmTimeout
}

func (s *Session) checkDeps() error {
	if s.Transcriber == nil || s.Detector == nil || s.Oracle == nil ||
		s.Gate == nil || s.Executor == nil || s.Logger == nil {
		return fmt.Errorf("services.Session dependencies not satisfied")
	}
	return nil
}

func fieldsForErr(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	return map[string]interface{}{"err": err.Error()}
}
