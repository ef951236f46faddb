// Package report synthesizes the final interview feedback from the
// accumulated session log and the reference link table.
package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/resources"
)

// Errors for report generation.
var (
	ErrEncodeLog = fmt.Errorf("failed to encode interview log")
)

// Generator produces the terminal feedback report.
type Generator struct {
	gw *llm.Gateway
}

// NewGenerator creates a report generator backed by the given gateway.
func NewGenerator(gw *llm.Gateway) *Generator {
	return &Generator{gw: gw}
}

// Generate renders the full feedback report for a finished interview.
// logData is the exported session log; it is serialized as indented JSON
// and handed to the model together with the reference link table.
func (g *Generator) Generate(ctx context.Context, logData any) (string, error) {
	logBytes, err := json.MarshalIndent(logData, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeLog, err)
	}

	system := prompts.Format(prompts.MustGet("report.json", "system"), map[string]string{
		"Resources": resources.String(),
	})

	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: "Вот лог интервью:\n" + string(logBytes)},
	}

	return g.gw.Complete(ctx, msgs, llm.TierAdvanced), nil
}
