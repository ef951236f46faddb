package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/interview-coach/internal/types"
)

func TestRecordTurnIDs(t *testing.T) {
	ledger := NewLedger("Мария")

	if id := ledger.RecordTurn("привет", nil, "вопрос 1"); id != 1 {
		t.Errorf("first turn id = %d, want 1", id)
	}
	if id := ledger.RecordTurn("ответ", nil, "вопрос 2"); id != 2 {
		t.Errorf("second turn id = %d, want 2", id)
	}
}

func TestNormalizeThoughts(t *testing.T) {
	tests := []struct {
		name     string
		thoughts any
		want     []types.Thought
	}{
		{"nil", nil, []types.Thought{}},
		{"blank string", "   ", []types.Thought{}},
		{
			"plain string wrapped in observer envelope",
			"интересный ответ",
			[]types.Thought{{From: types.AgentObserver, To: types.AgentInterviewer, Content: "интересный ответ"}},
		},
		{
			"slice keeps complete entries only",
			[]types.Thought{
				{From: "A", To: "B", Content: "ок"},
				{From: "", To: "B", Content: "без источника"},
				{From: "A", To: "B", Content: "  "},
			},
			[]types.Thought{{From: "A", To: "B", Content: "ок"}},
		},
		{"unsupported type", 42, []types.Thought{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeThoughts(tt.thoughts)
			if len(got) != len(tt.want) {
				t.Fatalf("normalizeThoughts() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExportFlattensThoughts(t *testing.T) {
	ledger := NewLedger("Иван")
	ledger.RecordTurn("Привет, я Иван", []types.Thought{
		{From: types.AgentIntake, To: types.AgentInterviewer, Content: "Parsed Profile: Middle Backend"},
		{From: types.AgentInterviewer, To: types.AgentInterviewer, Content: "Начну с основ"},
	}, "Расскажи про GIL.")
	ledger.RecordTurn("GIL это блокировка", []types.Thought{
		{From: types.AgentFactChecker, To: types.AgentInterviewer, Content: "ALERT: сомнительно"},
	}, "Уточни.")
	ledger.SetFinalFeedback("ВЕРДИКТ: Hire")

	doc := ledger.Export()

	if doc.ParticipantName != "Иван" || doc.FinalFeedback != "ВЕРДИКТ: Hire" {
		t.Errorf("export header = %+v", doc)
	}
	if len(doc.Turns) != 2 {
		t.Fatalf("export turns = %d, want 2", len(doc.Turns))
	}

	first := doc.Turns[0].InternalThoughts
	want := "[Intake]: " + ParsedProfilePhrase + " [Interviewer]: Начну с основ"
	if first != want {
		t.Errorf("flattened thoughts = %q, want %q", first, want)
	}

	second := doc.Turns[1].InternalThoughts
	if second != "[FactChecker]: ALERT: сомнительно" {
		t.Errorf("flattened thoughts = %q", second)
	}
}

func TestSaveWritesExportDocument(t *testing.T) {
	dir := t.TempDir()

	ledger := NewLedger("Аноним")
	ledger.RecordTurn("привет", "заметка", "вопрос")

	path, err := ledger.Save(dir)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "interview_log_") || !strings.HasSuffix(path, ".json") {
		t.Errorf("unexpected log filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved log: %v", err)
	}
	var doc ExportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved log is not valid JSON: %v", err)
	}
	if doc.ParticipantName != "Аноним" || len(doc.Turns) != 1 {
		t.Errorf("saved doc = %+v", doc)
	}
	if doc.Turns[0].InternalThoughts != "[Observer]: заметка" {
		t.Errorf("saved thoughts = %q", doc.Turns[0].InternalThoughts)
	}
}
