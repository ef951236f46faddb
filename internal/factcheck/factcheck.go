// Package factcheck red-flags candidate statements that look like unsupported
// or false claims. It is a two-stage extractor: a cheap router decides whether
// a statement is worth checking at all, and only then is the heavier verdict
// call made.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/input"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
)

// Checker routes and verifies candidate statements.
type Checker struct {
	gw *llm.Gateway
}

// NewChecker creates a fact checker over the given gateway.
func NewChecker(gw *llm.Gateway) *Checker {
	return &Checker{gw: gw}
}

// route is the router's output shape.
type route struct {
	ShouldFactcheck bool   `json:"should_factcheck"`
	Reason          string `json:"reason"`
}

// Check returns a verdict for one candidate statement. Short, empty and
// stop-like utterances never reach the router: they cannot carry a factual
// claim, and skipping them saves a model call. Any failure along the way
// degrades to the OK verdict.
func (c *Checker) Check(ctx context.Context, userMessage string) types.FactCheckVerdict {
	text := strings.TrimSpace(userMessage)
	if text == "" || input.IsStopCommand(text) {
		return types.OKVerdict()
	}

	if !c.shouldCheck(ctx, text) {
		return types.OKVerdict()
	}

	return c.verdict(ctx, text)
}

// shouldCheck asks the lite-tier router whether the statement warrants a
// verdict call.
func (c *Checker) shouldCheck(ctx context.Context, text string) bool {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("factcheck.json", "router")},
		{Role: llm.RoleUser, Content: text},
	}

	result := c.gw.CompleteJSON(ctx, messages, llm.TierLite)
	if llm.IsSentinel(result) {
		return false
	}
	if err := schemas.Validate(schemas.Router, result); err != nil {
		fmt.Printf("FactChecker router validation failed: %v\n", err)
		return false
	}

	var r route
	if data, err := json.Marshal(result); err == nil {
		_ = json.Unmarshal(data, &r)
	}
	return r.ShouldFactcheck
}

// verdict makes the heavier judgment call and enforces the verdict contract:
// when the alert flag is set, the content carries the alert marker whether or
// not the model remembered it.
func (c *Checker) verdict(ctx context.Context, text string) types.FactCheckVerdict {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("factcheck.json", "verdict")},
		{Role: llm.RoleUser, Content: text},
	}

	result := c.gw.CompleteJSON(ctx, messages, llm.TierStandard)
	if llm.IsSentinel(result) {
		return types.OKVerdict()
	}
	if err := schemas.Validate(schemas.Verdict, result); err != nil {
		fmt.Printf("FactChecker verdict validation failed: %v\n", err)
		return types.OKVerdict()
	}

	var v types.FactCheckVerdict
	data, err := json.Marshal(result)
	if err != nil {
		return types.OKVerdict()
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return types.OKVerdict()
	}

	return v.WithMarker()
}
