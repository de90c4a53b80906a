// Package classifier decides whether an utterance is an actionable command.
package classifier

import (
	"strings"

	"github.com/doeshing/vosh/internal/ports"
)

// triggerWords is the fixed, ordered detection list. The match is a plain
// case-insensitive substring check, so casual speech like "running late"
// trips it too; that false-positive rate is an accepted tradeoff, and the
// downstream confirmation gates absorb the cost.
var triggerWords = []string{"open", "launch", "execute", "run", "shutdown"}

// Keyword is the default CommandDetector policy.
type Keyword struct {
	words []string
	log   ports.Logger
}

// NewKeyword builds a detector over the default trigger list.
func NewKeyword(log ports.Logger) *Keyword {
	return &Keyword{words: triggerWords, log: log}
}

// Detect implements ports.CommandDetector. First match wins.
func (k *Keyword) Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range k.words {
		if strings.Contains(lower, word) {
			k.log.Debug("trigger word detected", map[string]interface{}{
				"word": word,
				"text": lower,
			})
			return true
		}
	}
	k.log.Debug("no trigger word found", map[string]interface{}{"text": lower})
	return false
}

var _ ports.CommandDetector = (*Keyword)(nil)
