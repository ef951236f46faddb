// Package intake extracts a structured candidate profile from the free-text
// introduction that opens a session.
package intake

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// stackVocabulary is the known-technology list used to scan raw text when the
// model returned no stack at all. It does not filter what the model did
// return: any mentioned technology is kept.
var stackVocabulary = []string{
	"python", "django", "fastapi", "flask",
	"java", "spring", "hibernate", "kotlin", "maven", "gradle",
	"javascript", "typescript", "react", "vue", "node",
	"sql", "postgres", "postgresql", "mysql", "mongodb",
	"redis", "docker", "kubernetes", "git", "linux", "celery", "rabbitmq", "kafka",
}

// stackSeparators splits a stack given as one string ("python, django / redis").
var stackSeparators = regexp.MustCompile(`[,|;/]+|\s+`)

// SplitStackString breaks a single stack string into candidate tokens.
func SplitStackString(s string) []string {
	var items []string
	for _, part := range stackSeparators.Split(strings.ToLower(s), -1) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// NormalizeStack lower-cases and deduplicates the technology tokens, aliases
// postgresql to postgres, and falls back to scanning the raw text against the
// vocabulary when the model produced nothing. The result is rendered sorted;
// order carries no meaning.
func NormalizeStack(items []string, rawText string) []string {
	var cleaned []string
	for _, v := range items {
		if s := strings.ToLower(strings.TrimSpace(v)); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	if len(cleaned) == 0 {
		low := strings.ToLower(rawText)
		for _, tech := range stackVocabulary {
			if strings.Contains(low, tech) {
				cleaned = append(cleaned, tech)
			}
		}
	}

	seen := make(map[string]struct{}, len(cleaned))
	out := make([]string, 0, len(cleaned))
	for _, s := range cleaned {
		s = strings.ReplaceAll(s, "postgresql", "postgres")
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	sort.Strings(out)
	return out
}

// RecomputeUnknowns derives which required profile fields are still missing.
// It is a pure function of the other profile fields; the model's own
// "unknowns" output is never trusted.
func RecomputeUnknowns(p *types.CandidateProfile) []string {
	unknowns := []string{}

	if p.YearsExperience == nil {
		unknowns = append(unknowns, "years_experience")
	}
	if len(p.Stack) == 0 {
		unknowns = append(unknowns, "stack")
	}
	if p.TargetRole == nil || *p.TargetRole == "" {
		unknowns = append(unknowns, "target_role")
	}
	if p.Grade == nil || *p.Grade == "" {
		unknowns = append(unknowns, "grade")
	}

	return unknowns
}
