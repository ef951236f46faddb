// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens a line to at most n display runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the extracted candidate
// profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Имя:    %s\n", profile.DisplayName()))
	sb.WriteString(fmt.Sprintf("Роль:   %s\n", profile.RoleOr("?")))
	sb.WriteString(fmt.Sprintf("Грейд:  %s\n", profile.GradeOr("?")))
	if profile.YearsExperience != nil {
		sb.WriteString(fmt.Sprintf("Опыт:   %d лет\n", *profile.YearsExperience))
	}

	if len(profile.Stack) > 0 {
		sb.WriteString("\nСтек:\n")
		count := min(len(profile.Stack), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Stack[i]))
		}
		if len(profile.Stack) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Stack)-maxItemsToShow))
		}
	}

	if len(profile.Unknowns) > 0 {
		sb.WriteString(fmt.Sprintf("\nНе выяснено: %s\n", strings.Join(profile.Unknowns, ", ")))
	}

	p.printBox("PARSED CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerdict outputs a fact-check verdict. Clean verdicts print a compact
// all-clear box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintVerdict(verdict types.FactCheckVerdict) {
	if !verdict.Alert {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ FACTCHECK: OK")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString("⚠ Подозрительное заявление\n")
	sb.WriteString(fmt.Sprintf("  %s", truncate(verdict.Content, boxWidth-8)))

	p.printBox("FACTCHECK ALERT", sb.String())
}

// PrintThoughts outputs the internal agent notes accumulated during a turn.
func (p *Printer) PrintThoughts(thoughts []types.Thought) {
	if len(thoughts) == 0 {
		return
	}

	var sb strings.Builder
	for i, t := range thoughts {
		name := strings.ReplaceAll(t.From, "_Agent", "")
		sb.WriteString(fmt.Sprintf("[%s]\n", name))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(t.Content, boxWidth-8)))
		if i < len(thoughts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INTERNAL THOUGHTS", strings.TrimSuffix(sb.String(), "\n"))
}
