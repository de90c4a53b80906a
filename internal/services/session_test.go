package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/pkg/logger"
	"github.com/doeshing/vosh/internal/ports"
)

type sessionFixture struct {
	session     *Session
	transcriber *stubTranscriber
	oracle      *stubOracle
	gate        *stubGate
	executor    *stubExecutor
	notifier    *stubNotifier
	history     *stubHistory
	out         *bytes.Buffer
}

func newFixture(utterance string, actionable bool, gateDecisions []bool, oracle *stubOracle) *sessionFixture {
	f := &sessionFixture{
		transcriber: &stubTranscriber{results: []domain.ListenResult{
			{Outcome: domain.ListenOK, Text: utterance},
		}},
		oracle:   oracle,
		gate:     &stubGate{decisions: gateDecisions},
		executor: &stubExecutor{result: domain.ExecutionResult{Ran: true}},
		notifier: &stubNotifier{enabled: true},
		history:  &stubHistory{},
		out:      &bytes.Buffer{},
	}
	f.session = &Session{
		Config: domain.Config{
			Oracle: domain.OracleSettings{
				ConversationalModel: "conv",
				CommandModel:        "cmd",
			},
			Session: domain.SessionSettings{CooldownSeconds: 3},
		},
		Profile:     "Linux (Manjaro 24.0, KDE)",
		Transcriber: f.transcriber,
		Speaker:     &stubSpeaker{},
		Detector:    stubDetector{actionable: actionable},
		Oracle:      f.oracle,
		Gate:        f.gate,
		Executor:    f.executor,
		Notifiers:   []ports.Notifier{f.notifier},
		History:     f.history,
		Logger:      logger.New(nil),
		Out:         f.out,
		Sleep:       func(time.Duration) {},
	}
	return f
}

func TestFullyApprovedCommandExecutes(t *testing.T) {
	oracle := &stubOracle{replies: map[string]string{
		"cmd":  `{"command": "kcalc"}`,
		"conv": "Opens the KDE calculator.",
	}}
	f := newFixture("open the calculator", true, []bool{true, true}, oracle)

	f.session.RunOnce(context.Background())

	if diff := cmp.Diff([]string{"kcalc"}, f.executor.commands); diff != "" {
		t.Fatalf("executor commands mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"kcalc"}, f.notifier.pushed); diff != "" {
		t.Fatalf("notifier pushes mismatch (-want +got):\n%s", diff)
	}
	if len(f.history.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(f.history.records))
	}
	rec := f.history.records[0]
	if !rec.Confirmed || !rec.Executed || !rec.Success || rec.Command != "kcalc" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestFirstGateDenialSkipsEverything(t *testing.T) {
	oracle := &stubOracle{replies: map[string]string{
		"cmd": `{"command": "rsync -a /home /backup"}`,
	}}
	f := newFixture("run the backup script", true, []bool{false}, oracle)

	f.session.RunOnce(context.Background())

	if len(f.executor.commands) != 0 {
		t.Fatalf("executor invoked %d times, want 0", len(f.executor.commands))
	}
	if len(f.oracle.prompts) != 0 {
		t.Fatal("oracle must not be consulted after first-gate denial")
	}
	if len(f.notifier.pushed) != 0 {
		t.Fatal("nothing should be pushed after first-gate denial")
	}
}

func TestSecondGateDenialCancelsExecution(t *testing.T) {
	oracle := &stubOracle{replies: map[string]string{
		"cmd":  `{"command": "shutdown -h now"}`,
		"conv": "Shuts the machine down.",
	}}
	f := newFixture("shutdown the machine", true, []bool{true, false}, oracle)

	f.session.RunOnce(context.Background())

	if len(f.executor.commands) != 0 {
		t.Fatalf("executor invoked %d times, want 0", len(f.executor.commands))
	}
	if len(f.history.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(f.history.records))
	}
	rec := f.history.records[0]
	if rec.Confirmed || rec.Executed {
		t.Fatalf("record should show the canceled cycle: %+v", rec)
	}
	if rec.Command != "shutdown -h now" {
		t.Fatalf("record command = %q", rec.Command)
	}
}

func TestSynthesisFailureAbortsCycle(t *testing.T) {
	oracle := &stubOracle{replies: map[string]string{
		"cmd": "I cannot help with that",
	}}
	f := newFixture("run something weird", true, []bool{true, true}, oracle)

	f.session.RunOnce(context.Background())

	if len(f.executor.commands) != 0 {
		t.Fatal("executor must not run without a synthesized command")
	}
	if f.gate.calls != 1 {
		t.Fatalf("gate calls = %d, want 1 (second gate never reached)", f.gate.calls)
	}
}

func TestConversationalBranchBypassesGates(t *testing.T) {
	oracle := &stubOracle{replies: map[string]string{
		"conv": "I'm doing well, thanks for asking.",
	}}
	f := newFixture("How are you today", false, nil, oracle)

	f.session.RunOnce(context.Background())

	if f.gate.calls != 0 {
		t.Fatalf("gate calls = %d, want 0", f.gate.calls)
	}
	if len(f.executor.commands) != 0 {
		t.Fatal("executor must not run on the conversational branch")
	}
	if !bytes.Contains(f.out.Bytes(), []byte("I'm doing well")) {
		t.Fatal("conversational reply was not printed")
	}
	if len(f.history.records) != 0 {
		t.Fatal("conversational branch must not write history")
	}
}

func TestMissedCaptureCostsNothing(t *testing.T) {
	oracle := &stubOracle{}
	f := newFixture("", true, nil, oracle)
	f.transcriber.results = []domain.ListenResult{{Outcome: domain.ListenTimeout}}

	f.session.RunOnce(context.Background())

	if f.gate.calls != 0 || len(f.executor.commands) != 0 || len(f.oracle.prompts) != 0 {
		t.Fatal("a missed capture must trigger no downstream activity")
	}
}

func TestIdempotentCycles(t *testing.T) {
	run := func() []string {
		oracle := &stubOracle{replies: map[string]string{
			"cmd":  `{"command": "kcalc"}`,
			"conv": "Opens the KDE calculator.",
		}}
		f := newFixture("open the calculator", true, []bool{true, true}, oracle)
		f.session.RunOnce(context.Background())
		return f.executor.commands
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated scenario diverged (-first +second):\n%s", diff)
	}
}

func TestExecutionFailureDoesNotPropagate(t *testing.T) {
	oracle := &stubOracle{replies: map[string]string{
		"cmd":  `{"command": "kcalc"}`,
		"conv": "Opens the KDE calculator.",
	}}
	f := newFixture("open the calculator", true, []bool{true, true}, oracle)
	f.executor.result = domain.ExecutionResult{ExitCode: 1}
	f.executor.err = errContext("exit status 1")

	f.session.RunOnce(context.Background()) // must not panic or error

	if len(f.history.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(f.history.records))
	}
	rec := f.history.records[0]
	if rec.Success || !rec.Executed || rec.ExitCode != 1 {
		t.Fatalf("unexpected record after failed execution: %+v", rec)
	}
}

type errContext string

func (e errContext) Error() string { return string(e) }
