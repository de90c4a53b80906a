package domain

import "time"

// CycleRecord captures the outcome of one command cycle for the audit log.
// A record is written whenever the classifier routed an utterance down the
// command branch, whether or not the gates approved it.
type CycleRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Utterance  string    `json:"utterance"`
	Command    string    `json:"command"`
	Summary    string    `json:"summary"`
	Confirmed  bool      `json:"confirmed"`
	Executed   bool      `json:"executed"`
	Success    bool      `json:"success"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
}
