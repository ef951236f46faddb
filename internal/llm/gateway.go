package llm

import (
	"context"
	"encoding/json"
)

// jsonOnlyInstruction is appended to the last user message before a
// JSON-constrained call. Duplicated emphasis is deliberate: the parse rescue
// below still has to cope with models that ignore it.
const jsonOnlyInstruction = "\n\nВАЖНО: Ответ должен быть ТОЛЬКО валидным JSON объектом. Без Markdown, без ```."

// Sentinel error mapping keys. A failed JSON extraction is reported as a
// well-formed mapping instead of an error so that no caller is ever forced
// to handle a raised failure mid-turn.
const (
	sentinelErrorKey   = "error"
	sentinelErrorValue = "json_parse_error"
	sentinelRawKey     = "raw_content"
)

// Gateway is the single entry point to the text-generation backend. It wraps
// a Client with the shared retry policy and the lenient JSON extraction.
// Extractors receive a Gateway at construction time; there is no package
// singleton.
type Gateway struct {
	client Client
	retry  RetryPolicy
}

// NewGateway creates a gateway over client with the given retry policy.
func NewGateway(client Client, retry RetryPolicy) *Gateway {
	return &Gateway{client: client, retry: retry}
}

// Complete sends the conversation and returns the reply text. It fails soft:
// after exhausting retries it returns the policy fallback string, never an
// error.
func (g *Gateway) Complete(ctx context.Context, messages []Message, tier ModelTier) string {
	return g.retry.Do(ctx, func() (string, error) {
		return g.client.Complete(ctx, messages, tier)
	})
}

// CompleteJSON strengthens the prompt with an explicit JSON-only instruction
// on the last user message (appending a new one if none exists), sends the
// conversation and parses the reply into a mapping. For any input it returns
// a mapping: either the parsed object or the sentinel error mapping.
func (g *Gateway) CompleteJSON(ctx context.Context, messages []Message, tier ModelTier) map[string]any {
	msgs := make([]Message, len(messages))
	copy(msgs, messages)

	if n := len(msgs); n > 0 && msgs[n-1].Role == RoleUser {
		msgs[n-1].Content += jsonOnlyInstruction
	} else {
		msgs = append(msgs, Message{Role: RoleUser, Content: jsonOnlyInstruction})
	}

	raw := g.Complete(ctx, msgs, tier)
	return DecodeJSONReply(raw)
}

// DecodeJSONReply parses a model reply into a mapping. Recovery order: strip
// code fences, strip wrapping quotes, strict parse, then rescue the first
// balanced {...} span. On total failure it returns the sentinel error
// mapping; it never returns nil and never panics, for any input string.
func DecodeJSONReply(raw string) map[string]any {
	text := StripWrappingQuotes(CleanJSONBlock(raw))

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil && parsed != nil {
		return parsed
	}

	if span := FirstJSONObject(text); span != "" {
		if err := json.Unmarshal([]byte(span), &parsed); err == nil && parsed != nil {
			return parsed
		}
	}

	return map[string]any{
		sentinelErrorKey: sentinelErrorValue,
		sentinelRawKey:   raw,
	}
}

// IsSentinel reports whether a mapping is the json_parse_error sentinel.
// Callers must treat it as "extraction failed" and apply their own default.
func IsSentinel(m map[string]any) bool {
	v, ok := m[sentinelErrorKey]
	return ok && v == sentinelErrorValue
}
