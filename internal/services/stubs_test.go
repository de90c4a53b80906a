package services

import (
	"context"
	"errors"
	"time"

	"github.com/doeshing/vosh/internal/domain"
)

// stubTranscriber replays a queue of listen results.
type stubTranscriber struct {
	results []domain.ListenResult
	calls   int
}

func (s *stubTranscriber) Listen(context.Context, time.Duration) domain.ListenResult {
	if s.calls >= len(s.results) {
		return domain.ListenResult{Outcome: domain.ListenTimeout}
	}
	res := s.results[s.calls]
	s.calls++
	return res
}

func (s *stubTranscriber) Close() error { return nil }

// stubSpeaker records everything spoken.
type stubSpeaker struct {
	spoken []string
	err    error
}

func (s *stubSpeaker) Speak(text string) error {
	s.spoken = append(s.spoken, text)
	return s.err
}

// stubOracle answers by model name.
type stubOracle struct {
	replies map[string]string
	errs    map[string]error
	prompts []string
}

func (s *stubOracle) Generate(_ context.Context, model, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if err, ok := s.errs[model]; ok {
		return "", err
	}
	if reply, ok := s.replies[model]; ok {
		return reply, nil
	}
	return "", errors.New("no reply configured")
}

// stubDetector returns a fixed decision.
type stubDetector struct{ actionable bool }

func (s stubDetector) Detect(string) bool { return s.actionable }

// stubGate replays a queue of decisions.
type stubGate struct {
	decisions []bool
	calls     int
	prompts   []string
}

func (s *stubGate) Confirm(_ context.Context, promptText string, _ time.Duration) bool {
	s.prompts = append(s.prompts, promptText)
	if s.calls >= len(s.decisions) {
		return false
	}
	d := s.decisions[s.calls]
	s.calls++
	return d
}

// stubExecutor records invocation arguments.
type stubExecutor struct {
	commands []string
	result   domain.ExecutionResult
	err      error
}

func (s *stubExecutor) Execute(_ context.Context, command string) (domain.ExecutionResult, error) {
	s.commands = append(s.commands, command)
	return s.result, s.err
}

// stubNotifier records pushes.
type stubNotifier struct {
	pushed  []string
	enabled bool
	err     error
}

func (s *stubNotifier) Push(text string) error {
	s.pushed = append(s.pushed, text)
	return s.err
}

func (s *stubNotifier) Enabled() bool { return s.enabled }

// stubPrompter replays typed fallback lines.
type stubPrompter struct {
	lines []string
	calls int
	err   error
}

func (s *stubPrompter) ReadLine(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.lines) {
		return "", errors.New("no more input")
	}
	line := s.lines[s.calls]
	s.calls++
	return line, nil
}

// stubHistory collects saved records.
type stubHistory struct {
	records []domain.CycleRecord
}

func (s *stubHistory) Save(record domain.CycleRecord) error {
	s.records = append(s.records, record)
	return nil
}

func (s *stubHistory) Records(int, string) ([]domain.CycleRecord, error) {
	return s.records, nil
}
