package notify

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"

	"github.com/doeshing/vosh/internal/ports"
)

var speakerInit sync.Once

// Cue plays a short mp3 sound right before the microphone opens, so the
// operator knows the listen window started.
type Cue struct {
	path string
	log  ports.Logger
}

// NewCue builds a cue player for the given mp3 file.
func NewCue(path string, log ports.Logger) *Cue {
	return &Cue{path: path, log: log}
}

// Play implements ports.ListenCue, blocking until the sound finishes.
func (c *Cue) Play() error {
	if c.path == "" {
		return nil
	}

	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("open cue sound: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode cue sound: %w", err)
	}
	defer streamer.Close()

	var initErr error
	speakerInit.Do(func() {
		initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return fmt.Errorf("init speaker: %w", initErr)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}

var _ ports.ListenCue = (*Cue)(nil)
