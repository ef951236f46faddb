// Package types provides type definitions for structured data used throughout the interview-coach system.
package types

// CandidateProfile is the structured summary of a candidate extracted from
// free text at session start. Scalar fields are optional; ExperienceText is
// guaranteed non-empty by the intake extractor (it falls back to the raw
// input). Unknowns is always recomputed from the other fields, never taken
// verbatim from the model.
type CandidateProfile struct {
	Name            *string  `json:"name"`
	TargetRole      *string  `json:"target_role"`
	Grade           *string  `json:"grade"`
	YearsExperience *int     `json:"years_experience"`
	Stack           []string `json:"stack"`
	ExperienceText  string   `json:"experience_text"`
	Unknowns        []string `json:"unknowns"`
}

// DefaultProfile is the deterministic fallback when intake extraction fails:
// everything unknown, raw text preserved as the experience description.
func DefaultProfile(rawText string) *CandidateProfile {
	return &CandidateProfile{
		Stack:          []string{},
		ExperienceText: rawText,
		Unknowns:       []string{"years_experience", "stack", "target_role", "grade"},
	}
}

// HasName reports whether intake established a candidate name. The turn
// orchestrator uses it for entry routing: no name yet means the session is
// still at the intake step.
func (p *CandidateProfile) HasName() bool {
	return p != nil && p.Name != nil && *p.Name != ""
}

// DisplayName returns the candidate name or the anonymous placeholder.
func (p *CandidateProfile) DisplayName() string {
	if p.HasName() {
		return *p.Name
	}
	return "Аноним"
}

// NameOr returns the candidate name or a default.
func (p *CandidateProfile) NameOr(def string) string {
	if p.HasName() {
		return *p.Name
	}
	return def
}

// RoleOr returns the target role or a default.
func (p *CandidateProfile) RoleOr(def string) string {
	if p != nil && p.TargetRole != nil && *p.TargetRole != "" {
		return *p.TargetRole
	}
	return def
}

// GradeOr returns the grade or a default.
func (p *CandidateProfile) GradeOr(def string) string {
	if p != nil && p.Grade != nil && *p.Grade != "" {
		return *p.Grade
	}
	return def
}
