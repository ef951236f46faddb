package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-coach/internal/types"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.CandidateProfile{
		Name:            strPtr("Иван"),
		TargetRole:      strPtr("Backend Developer"),
		Grade:           strPtr("Middle"),
		YearsExperience: intPtr(3),
		Stack:           []string{"django", "postgres", "python"},
		ExperienceText:  "3 года на Django",
		Unknowns:        []string{},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PARSED CANDIDATE PROFILE")
	assert.Contains(t, output, "Иван")
	assert.Contains(t, output, "Backend Developer")
	assert.Contains(t, output, "Middle")
	assert.Contains(t, output, "django")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProfile_Unknowns(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(types.DefaultProfile("привет"))
	output := buf.String()

	assert.Contains(t, output, "Аноним")
	assert.Contains(t, output, "years_experience")
}

func TestPrintVerdict_OK(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVerdict(types.OKVerdict())

	assert.Contains(t, buf.String(), "FACTCHECK: OK")
}

func TestPrintVerdict_Alert(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVerdict(types.FactCheckVerdict{Alert: true, Content: "ALERT: сомнительное заявление"})
	output := buf.String()

	assert.Contains(t, output, "FACTCHECK ALERT")
	assert.Contains(t, output, "сомнительное")
}

func TestPrintThoughts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintThoughts([]types.Thought{
		{From: types.AgentFactChecker, To: types.AgentInterviewer, Content: "ALERT: проверить"},
		{From: types.AgentInterviewer, To: types.AgentInterviewer, Content: "Спрошу про GIL"},
	})
	output := buf.String()

	assert.Contains(t, output, "INTERNAL THOUGHTS")
	assert.Contains(t, output, "[FactChecker]")
	assert.Contains(t, output, "[Interviewer]")
	assert.NotContains(t, output, "_Agent")
}

func TestPrintThoughts_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintThoughts(nil)

	assert.Empty(t, buf.String())
}

func TestTruncateKeepsShortLines(t *testing.T) {
	assert.Equal(t, "короткая", truncate("короткая", 20))
	long := truncate("очень длинная строка с кириллицей внутри неё", 10)
	assert.Equal(t, 10, len([]rune(long)))
}
