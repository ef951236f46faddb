package intake

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
)

// Extractor turns a free-text candidate introduction into a CandidateProfile.
// The gateway is injected at construction so tests can substitute a fake
// backend.
type Extractor struct {
	gw *llm.Gateway
}

// NewExtractor creates an intake extractor over the given gateway.
func NewExtractor(gw *llm.Gateway) *Extractor {
	return &Extractor{gw: gw}
}

// Extract builds the intake prompt, asks the model for a profile and
// post-processes the result. It never fails: a sentinel mapping, a schema
// violation or a decode error all degrade to the default profile, and the
// pure normalization steps run regardless of where the data came from.
func (e *Extractor) Extract(ctx context.Context, rawText string) *types.CandidateProfile {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("intake.json", "extract-profile")},
		{Role: llm.RoleUser, Content: rawText},
	}

	result := e.gw.CompleteJSON(ctx, messages, llm.TierStandard)
	profile := decodeProfile(result, rawText)

	// Post-processing is independent of the model: experience_text must never
	// be empty, the stack is normalized, unknowns are recomputed.
	if profile.ExperienceText == "" {
		profile.ExperienceText = rawText
	}
	profile.Stack = NormalizeStack(profile.Stack, rawText)
	profile.Unknowns = RecomputeUnknowns(profile)

	return profile
}

// decodeProfile validates and decodes the raw mapping, falling back to the
// default profile on any failure.
func decodeProfile(result map[string]any, rawText string) *types.CandidateProfile {
	if llm.IsSentinel(result) {
		fmt.Printf("Intake extraction failed: model reply was not JSON\n")
		return types.DefaultProfile(rawText)
	}

	coerceStack(result)

	if err := schemas.Validate(schemas.Profile, result); err != nil {
		fmt.Printf("Intake extraction failed: %v\n", err)
		return types.DefaultProfile(rawText)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return types.DefaultProfile(rawText)
	}
	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		fmt.Printf("Intake extraction failed: %v\n", err)
		return types.DefaultProfile(rawText)
	}
	return &profile
}

// coerceStack tolerates a stack given as one comma-separated string instead
// of a list, a shape some models produce.
func coerceStack(result map[string]any) {
	s, ok := result["stack"].(string)
	if !ok {
		return
	}
	items := SplitStackString(s)
	coerced := make([]any, len(items))
	for i, item := range items {
		coerced[i] = item
	}
	result["stack"] = coerced
}
