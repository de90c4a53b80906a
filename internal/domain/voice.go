package domain

// ListenOutcome distinguishes why a listen cycle produced no text. The
// distinction matters for logging only; control flow collapses every non-OK
// outcome to "no transcription".
type ListenOutcome string

const (
	// ListenOK means speech was captured and transcribed.
	ListenOK ListenOutcome = "ok"
	// ListenTimeout means no speech was detected within the window.
	ListenTimeout ListenOutcome = "timeout"
	// ListenUnintelligible means audio was captured but produced no words.
	ListenUnintelligible ListenOutcome = "unintelligible"
	// ListenUnavailable means the capture or transcription backend failed.
	ListenUnavailable ListenOutcome = "unavailable"
)

// ListenResult is the sum type returned by the transcription gateway.
type ListenResult struct {
	Outcome ListenOutcome
	Text    string
	Err     error
}

// OK reports whether a usable transcription was produced.
func (r ListenResult) OK() bool {
	return r.Outcome == ListenOK && r.Text != ""
}
