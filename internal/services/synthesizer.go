package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/vosh/internal/domain"
)

// commandKey is the single key the oracle is instructed to answer with.
const commandKey = "command"

// buildCommandPrompt embeds the system profile and the raw utterance into a
// single synthesis prompt. The desktop-environment instruction keeps the
// oracle from suggesting binaries that do not exist on this machine, e.g. a
// GNOME terminal launcher on a KDE profile.
func buildCommandPrompt(profile domain.SystemProfile, utterance string) string {
	return fmt.Sprintf(
		"This system is running on %s. "+
			"Convert the following instruction into a JSON object with a single key %q "+
			"holding a command appropriate for this environment. "+
			"Do not output binaries from a different desktop environment: "+
			"on a KDE profile prefer 'konsole' over 'gnome-terminal'. "+
			"Instruction: %s",
		profile, commandKey, utterance,
	)
}

// synthesize asks the command model to translate the utterance into a
// structured command. An absent result is a normal outcome, not an error:
// oracles are unreliable, and an unusable reply just aborts this cycle.
func (s *Session) synthesize(ctx context.Context, utterance string) (domain.SynthesizedCommand, bool) {
	prompt := buildCommandPrompt(s.Profile, utterance)
	s.Logger.Debug("command prompt built", map[string]interface{}{"prompt": prompt})

	raw, err := s.Oracle.Generate(ctx, s.Config.Oracle.CommandModel, prompt)
	if err != nil {
		s.Logger.Warn("command model unavailable", map[string]interface{}{"err": err.Error()})
		return domain.SynthesizedCommand{}, false
	}

	command, ok := parseCommandReply(raw)
	if !ok {
		s.Logger.Warn("failed to parse command reply", map[string]interface{}{"raw": raw})
		return domain.SynthesizedCommand{}, false
	}
	return domain.SynthesizedCommand{Command: command}, true
}

// parseCommandReply recovers the command text from the oracle's free-form
// reply: strip an optional markdown fence, parse as JSON, require the
// command key with a non-empty string value.
func parseCommandReply(raw string) (string, bool) {
	cleaned := stripFences(raw)

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return "", false
	}

	value, ok := payload[commandKey].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// stripFences removes a leading ```json marker and a trailing ``` marker.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "```json"))
	}
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "```"))
	}
	return text
}

// summarize asks the conversational model for a one-sentence description of
// the synthesized command. Purely advisory; an empty result is fine.
func (s *Session) summarize(ctx context.Context, command string) string {
	prompt := fmt.Sprintf("Summarize in one sentence what the following command does: %s", command)
	summary, err := s.Oracle.Generate(ctx, s.Config.Oracle.ConversationalModel, prompt)
	if err != nil {
		s.Logger.Warn("summary unavailable", map[string]interface{}{"err": err.Error()})
		return ""
	}
	return strings.TrimSpace(summary)
}
