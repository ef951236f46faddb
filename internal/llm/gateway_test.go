package llm

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fakeClient returns canned replies and records the messages it was sent.
type fakeClient struct {
	reply    string
	err      error
	lastSent []Message
	calls    int
}

func (f *fakeClient) Complete(_ context.Context, messages []Message, _ ModelTier) (string, error) {
	f.calls++
	f.lastSent = messages
	return f.reply, f.err
}

func (f *fakeClient) GetModel(ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error              { return nil }

func noWaitPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, Delay: 0, Fallback: FallbackReply}
}

func TestDecodeJSONReply_WellFormedVariants(t *testing.T) {
	want := map[string]any{"alert": true, "content": "OK"}

	variants := []struct {
		name  string
		input string
	}{
		{"bare", `{"alert": true, "content": "OK"}`},
		{"json fence", "```json\n{\"alert\": true, \"content\": \"OK\"}\n```"},
		{"generic fence", "```\n{\"alert\": true, \"content\": \"OK\"}\n```"},
		{"single quoted", `'{"alert": true, "content": "OK"}'`},
		{"buried in prose", "Вот результат: {\"alert\": true, \"content\": \"OK\"} — готово."},
	}

	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeJSONReply(tt.input)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("DecodeJSONReply(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestDecodeJSONReply_NeverFails(t *testing.T) {
	inputs := []string{
		"",
		"просто текст без JSON",
		"{broken",
		"```json\nnot json\n```",
		"null",
		"[1, 2, 3]",
	}

	for _, input := range inputs {
		got := DecodeJSONReply(input)
		if got == nil {
			t.Fatalf("DecodeJSONReply(%q) returned nil", input)
		}
		if !IsSentinel(got) {
			t.Errorf("DecodeJSONReply(%q) = %v, want sentinel", input, got)
		}
		if got[sentinelRawKey] != input {
			t.Errorf("sentinel raw_content = %v, want %q", got[sentinelRawKey], input)
		}
	}
}

func TestIsSentinel(t *testing.T) {
	if !IsSentinel(map[string]any{"error": "json_parse_error", "raw_content": "x"}) {
		t.Error("expected sentinel to be recognized")
	}
	if IsSentinel(map[string]any{"error": "other"}) {
		t.Error("unrelated error value must not be a sentinel")
	}
	if IsSentinel(map[string]any{"alert": false}) {
		t.Error("ordinary mapping must not be a sentinel")
	}
}

func TestCompleteJSON_AppendsInstructionToLastUserMessage(t *testing.T) {
	fake := &fakeClient{reply: `{"ok": true}`}
	gw := NewGateway(fake, noWaitPolicy())

	original := []Message{
		{Role: RoleSystem, Content: "system prompt"},
		{Role: RoleUser, Content: "вопрос"},
	}
	gw.CompleteJSON(context.Background(), original, TierStandard)

	last := fake.lastSent[len(fake.lastSent)-1]
	if last.Role != RoleUser || !strings.HasPrefix(last.Content, "вопрос") {
		t.Fatalf("instruction not appended to last user message: %+v", last)
	}
	if !strings.Contains(last.Content, "валидным JSON") {
		t.Errorf("missing JSON instruction in %q", last.Content)
	}
	// Caller's slice must stay untouched.
	if original[1].Content != "вопрос" {
		t.Errorf("caller message mutated: %q", original[1].Content)
	}
}

func TestCompleteJSON_AppendsNewMessageWhenLastNotUser(t *testing.T) {
	fake := &fakeClient{reply: `{"ok": true}`}
	gw := NewGateway(fake, noWaitPolicy())

	gw.CompleteJSON(context.Background(), []Message{
		{Role: RoleAssistant, Content: "предыдущий ответ"},
	}, TierStandard)

	if len(fake.lastSent) != 2 {
		t.Fatalf("expected appended message, got %d messages", len(fake.lastSent))
	}
	if fake.lastSent[1].Role != RoleUser {
		t.Errorf("appended message role = %q, want user", fake.lastSent[1].Role)
	}
}

func TestComplete_DegradesToFallbackAfterRetries(t *testing.T) {
	fake := &fakeClient{err: errors.New("connection reset")}
	gw := NewGateway(fake, noWaitPolicy())

	got := gw.Complete(context.Background(), []Message{{Role: RoleUser, Content: "привет"}}, TierStandard)
	if got != FallbackReply {
		t.Errorf("Complete() = %q, want fallback reply", got)
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2 (bounded retries)", fake.calls)
	}
}

func TestCompleteJSON_SentinelOnFallbackReply(t *testing.T) {
	fake := &fakeClient{err: errors.New("service unavailable")}
	gw := NewGateway(fake, noWaitPolicy())

	got := gw.CompleteJSON(context.Background(), []Message{{Role: RoleUser, Content: "привет"}}, TierStandard)
	if !IsSentinel(got) {
		t.Errorf("expected sentinel when backend degraded, got %v", got)
	}
}
