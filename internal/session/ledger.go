// Package session holds the interview ledger and the session runner that
// drives a whole interview from greeting to exported report.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/interview-coach/internal/types"
)

// ParsedProfilePhrase replaces the raw intake note in the exported log.
const ParsedProfilePhrase = "Профиль кандидата успешно проанализирован."

// DefaultOutputDir is where exported session logs land unless overridden.
const DefaultOutputDir = "outputs"

// Turn is one recorded exchange in session order.
type Turn struct {
	TurnID              int             `json:"turn_id"`
	UserMessage         string          `json:"user_message"`
	InternalThoughts    []types.Thought `json:"internal_thoughts"`
	AgentVisibleMessage string          `json:"agent_visible_message"`
}

// Ledger accumulates the full interview transcript plus the internal agent
// notes for each turn. It is the document the reporter analyzes and the
// source of the terminal export.
type Ledger struct {
	ParticipantName string `json:"participant_name"`
	Turns           []Turn `json:"turns"`
	FinalFeedback   string `json:"final_feedback"`
}

// NewLedger opens a ledger for one participant.
func NewLedger(participantName string) *Ledger {
	return &Ledger{ParticipantName: participantName, Turns: []Turn{}}
}

// RecordTurn appends one exchange and returns its 1-based turn id. Thoughts
// may be a plain string (wrapped in the observer envelope), a []types.Thought
// (entries with any empty field are dropped), or nil.
func (l *Ledger) RecordTurn(userMessage string, thoughts any, agentMessage string) int {
	turn := Turn{
		TurnID:              len(l.Turns) + 1,
		UserMessage:         userMessage,
		InternalThoughts:    normalizeThoughts(thoughts),
		AgentVisibleMessage: agentMessage,
	}
	l.Turns = append(l.Turns, turn)
	return turn.TurnID
}

// SetFinalFeedback seals the ledger with the generated report.
func (l *Ledger) SetFinalFeedback(feedback string) {
	l.FinalFeedback = feedback
}

func normalizeThoughts(thoughts any) []types.Thought {
	switch v := thoughts.(type) {
	case nil:
		return []types.Thought{}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return []types.Thought{}
		}
		return []types.Thought{{From: types.AgentObserver, To: types.AgentInterviewer, Content: s}}
	case []types.Thought:
		norm := make([]types.Thought, 0, len(v))
		for _, t := range v {
			from := strings.TrimSpace(t.From)
			to := strings.TrimSpace(t.To)
			content := strings.TrimSpace(t.Content)
			if from != "" && to != "" && content != "" {
				norm = append(norm, types.Thought{From: from, To: to, Content: content})
			}
		}
		return norm
	}
	return []types.Thought{}
}

// ExportTurn is the externally required turn shape: thoughts flattened into
// one tagged string.
type ExportTurn struct {
	TurnID              int    `json:"turn_id"`
	AgentVisibleMessage string `json:"agent_visible_message"`
	UserMessage         string `json:"user_message"`
	InternalThoughts    string `json:"internal_thoughts"`
}

// ExportDoc is the terminal session artifact written to disk.
type ExportDoc struct {
	ParticipantName string       `json:"participant_name"`
	Turns           []ExportTurn `json:"turns"`
	FinalFeedback   string       `json:"final_feedback"`
}

// Export flattens the ledger into the external document shape. Each thought
// becomes "[<source>]: <content>" with the "_Agent" suffix stripped from the
// source; the raw intake profile note is replaced with a canned phrase.
func (l *Ledger) Export() ExportDoc {
	doc := ExportDoc{
		ParticipantName: l.ParticipantName,
		Turns:           make([]ExportTurn, 0, len(l.Turns)),
		FinalFeedback:   l.FinalFeedback,
	}

	for _, turn := range l.Turns {
		parts := make([]string, 0, len(turn.InternalThoughts))
		for _, t := range turn.InternalThoughts {
			name := strings.ReplaceAll(t.From, "_Agent", "")
			if name == "" {
				name = "System"
			}
			content := strings.TrimSpace(t.Content)
			if name == "Intake" && strings.Contains(content, "Parsed Profile") {
				content = ParsedProfilePhrase
			}
			parts = append(parts, fmt.Sprintf("[%s]: %s", name, content))
		}

		doc.Turns = append(doc.Turns, ExportTurn{
			TurnID:              turn.TurnID,
			AgentVisibleMessage: turn.AgentVisibleMessage,
			UserMessage:         turn.UserMessage,
			InternalThoughts:    strings.Join(parts, " "),
		})
	}

	return doc
}

// Save writes the export document to dir as interview_log_<timestamp>.json
// and returns the written path.
func (l *Ledger) Save(dir string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("interview_log_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(l.Export(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode session log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write session log: %w", err)
	}

	return path, nil
}
