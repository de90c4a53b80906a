package classifier

import (
	"testing"

	"github.com/doeshing/vosh/internal/pkg/logger"
)

func TestKeywordDetect(t *testing.T) {
	detector := NewKeyword(logger.New(nil))

	cases := []struct {
		text string
		want bool
	}{
		{"Please run the backup", true},
		{"OPEN the calculator", true},
		{"could you Launch firefox", true},
		{"execute order 66", true},
		{"shutdown the machine tonight", true},
		{"I went running this morning", true}, // accepted false positive
		{"How are you today", false},
		{"tell me a story", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := detector.Detect(tc.text); got != tc.want {
			t.Errorf("Detect(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
