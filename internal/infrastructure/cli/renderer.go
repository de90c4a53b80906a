package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/services"
)

// RenderHistory prints cycle records newest first, one block per cycle.
func RenderHistory(out io.Writer, records []domain.CycleRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s (%s)\n", rec.Utterance, humanize.Time(rec.Timestamp))
		if rec.Command != "" {
			fmt.Fprintf(out, "  command: %s\n", rec.Command)
		}
		if rec.Summary != "" {
			fmt.Fprintf(out, "  summary: %s\n", rec.Summary)
		}
		fmt.Fprintf(out, "  %s\n", cycleStatus(rec))
	}
}

func cycleStatus(rec domain.CycleRecord) string {
	switch {
	case !rec.Confirmed:
		return "status: not confirmed"
	case !rec.Executed:
		return "status: confirmed, not executed"
	case rec.Success:
		return fmt.Sprintf("status: executed ok (%dms)", rec.DurationMS)
	default:
		return fmt.Sprintf("status: failed, exit code %d", rec.ExitCode)
	}
}

// RenderDoctorResults prints one line per environment check.
func RenderDoctorResults(out io.Writer, results []services.CheckResult) {
	for _, res := range results {
		status := "FAIL"
		if res.OK {
			status = "OK"
		}
		fmt.Fprintf(out, "[%s] %s - %s\n", status, res.Name, res.Detail)
	}
}
