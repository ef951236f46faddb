package types

import "strings"

// AlertMarker prefixes every fact-check warning shown to the interviewer.
// The extractor enforces it after validation; the model is not trusted to
// comply on its own.
const AlertMarker = "ALERT:"

// Agent labels used as thought sources and destinations.
const (
	AgentIntake      = "Intake_Agent"
	AgentFactChecker = "FactChecker_Agent"
	AgentInterviewer = "Interviewer_Agent"
	AgentObserver    = "Observer_Agent"
)

// FactCheckVerdict is the routed fact-check result for one candidate
// statement. When Alert is true, Content carries the warning and starts with
// AlertMarker.
type FactCheckVerdict struct {
	Alert   bool   `json:"alert"`
	Content string `json:"content"`
}

// OKVerdict is the deterministic default: nothing suspicious.
func OKVerdict() FactCheckVerdict {
	return FactCheckVerdict{Alert: false, Content: "OK"}
}

// WithMarker returns the verdict with AlertMarker force-prefixed onto the
// content whenever Alert is set and the model omitted it.
func (v FactCheckVerdict) WithMarker() FactCheckVerdict {
	content := strings.TrimSpace(v.Content)
	if v.Alert && !strings.HasPrefix(strings.ToLower(content), strings.ToLower(AlertMarker)) {
		content = AlertMarker + " " + content
	}
	v.Content = content
	return v
}

// InterviewerTurn is one interview-generation result. Thought is internal
// only and never shown to the candidate; Message is the sole candidate-visible
// artifact of a turn.
type InterviewerTurn struct {
	Thought string `json:"thought"`
	Message string `json:"message"`
}

// DefaultTurn is the deterministic fallback when turn generation fails.
func DefaultTurn() InterviewerTurn {
	return InterviewerTurn{
		Thought: "Анализирую ответ...",
		Message: "Давай продолжим. Расскажи подробнее о твоем опыте.",
	}
}

// Thought is one internal note exchanged between agents through shared state.
// Thoughts accumulate append-only for the whole session and are flattened
// into the exported log.
type Thought struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
}
