// Package voice implements the transcription gateway: microphone capture
// through portaudio and local transcription through whisper.cpp.
package voice

import (
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	sampleRate = 16000
	frameSize  = 320 // 20ms at 16kHz

	// silenceThreshRMS separates speech frames from room noise.
	silenceThreshRMS = 0.015
	// silenceHangover is how much trailing silence ends a capture once
	// speech has started.
	silenceHangover = 600 * time.Millisecond
)

// Recorder captures mono 16kHz PCM from the default input device.
type Recorder struct{}

// NewRecorder returns an uninitialized recorder; call Init before recording.
func NewRecorder() *Recorder { return &Recorder{} }

// Init brings up portaudio. Must be paired with Close.
func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

// Close tears portaudio down.
func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record listens for at most maxDur. Capture starts when frame energy rises
// above the silence threshold and stops after the hangover of trailing
// silence. An empty (non-nil error free) result means no speech was
// detected within the window.
func (r *Recorder) Record(maxDur time.Duration) ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, sampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var (
		speaking      bool
		silentElapsed time.Duration
	)
	frameDur := time.Second * frameSize / sampleRate
	maxFrames := int(maxDur / frameDur)

	for i := 0; i < maxFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > silenceThreshRMS {
			speaking = true
			silentElapsed = 0
			out = append(out, buf...)
			continue
		}

		if speaking {
			silentElapsed += frameDur
			if silentElapsed >= silenceHangover {
				break
			}
			out = append(out, buf...)
		}
	}

	return out, nil
}

func frameRMS(frame []float32) float64 {
	var sum float64
	for _, sample := range frame {
		sum += float64(sample * sample)
	}
	return math.Sqrt(sum / float64(len(frame)))
}
