// Package notify mirrors candidate commands to companion devices and plays
// the listen cue. Everything here is best-effort: a failed push never
// affects the session pipeline.
package notify

import (
	"fmt"
	"os/exec"

	"github.com/doeshing/vosh/internal/ports"
)

const kdeconnectBinary = "kdeconnect-cli"

// KDEConnect pushes the command text to a paired phone as a KDE Connect
// notification.
type KDEConnect struct {
	log ports.Logger
}

// NewKDEConnect builds the notifier.
func NewKDEConnect(log ports.Logger) *KDEConnect {
	return &KDEConnect{log: log}
}

// Push implements ports.Notifier.
func (k *KDEConnect) Push(text string) error {
	err := exec.Command(kdeconnectBinary, "--send-notification", "Command: "+text).Run()
	if err != nil {
		return fmt.Errorf("%s: %w", kdeconnectBinary, err)
	}
	k.log.Debug("command pushed to phone for inspection", nil)
	return nil
}

// Enabled reports whether kdeconnect-cli is on PATH.
func (k *KDEConnect) Enabled() bool {
	_, err := exec.LookPath(kdeconnectBinary)
	return err == nil
}

var _ ports.Notifier = (*KDEConnect)(nil)
