// Package interviewer generates the interviewer's next turn: a hidden thought
// and the single candidate-visible message. The persona strategy (adaptive
// difficulty, stack-scoped topics) lives entirely in the prompt content.
package interviewer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
)

// historyWindow bounds the prompt size: only the trailing messages of the
// conversation are rendered into the turn prompt.
const historyWindow = 10

// FirstQuestionCue is the synthetic user text for the very first interviewer
// turn, before the candidate has answered anything.
func FirstQuestionCue() string {
	return prompts.MustGet("interviewer.json", "first-question")
}

// Agent generates interview turns.
type Agent struct {
	gw *llm.Gateway
}

// NewAgent creates an interviewer over the given gateway.
func NewAgent(gw *llm.Gateway) *Agent {
	return &Agent{gw: gw}
}

// NextTurn produces the next {thought, message} pair from the latest
// (possibly alert-prefixed) user text, the trailing history window and the
// candidate profile. It never fails: malformed model output degrades to the
// default turn.
func (a *Agent) NextTurn(ctx context.Context, userText string, history []llm.Message, profile *types.CandidateProfile) types.InterviewerTurn {
	stack := "Python"
	if len(profile.Stack) > 0 {
		stack = strings.Join(profile.Stack, ", ")
	}

	system := prompts.Format(prompts.MustGet("interviewer.json", "system"), map[string]string{
		"Name":  profile.NameOr("Кандидат"),
		"Role":  profile.RoleOr("Backend Dev"),
		"Grade": profile.GradeOr("Не указан"),
		"Stack": stack,
	})
	user := prompts.Format(prompts.MustGet("interviewer.json", "turn"), map[string]string{
		"History":  renderHistory(history),
		"UserText": userText,
	})

	result := a.gw.CompleteJSON(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, llm.TierStandard)

	return decodeTurn(result)
}

// renderHistory formats the trailing window of the conversation as readable
// dialogue lines.
func renderHistory(history []llm.Message) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var sb strings.Builder
	for _, msg := range history {
		label := "Интервьюер"
		if msg.Role == llm.RoleUser {
			label = "Кандидат"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, msg.Content))
	}
	return sb.String()
}

// decodeTurn validates and decodes a turn mapping, patching missing fields
// with the defaults.
func decodeTurn(result map[string]any) types.InterviewerTurn {
	fallback := types.DefaultTurn()

	if llm.IsSentinel(result) {
		return fallback
	}
	if err := schemas.Validate(schemas.Turn, result); err != nil {
		fmt.Printf("Interviewer validation failed: %v\n", err)
		return fallback
	}

	var turn types.InterviewerTurn
	data, err := json.Marshal(result)
	if err != nil {
		return fallback
	}
	if err := json.Unmarshal(data, &turn); err != nil {
		return fallback
	}

	if strings.TrimSpace(turn.Thought) == "" {
		turn.Thought = fallback.Thought
	}
	if strings.TrimSpace(turn.Message) == "" {
		turn.Message = fallback.Message
	}
	return turn
}
