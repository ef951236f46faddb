package llm

import (
	"context"
	"fmt"
	"time"
)

// FallbackReply is the candidate-visible degradation text returned when the
// backend stays unreachable after all retry attempts.
const FallbackReply = "Извините, ошибка соединения с нейросетью. Попробуйте повторить запрос."

// RetryPolicy is a bounded-retry policy for external calls: a fixed number of
// attempts with a fixed delay between them, degrading to a fallback value
// instead of surfacing an error. One policy instance is shared by every
// gateway call so the retry behavior stays uniform.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Fallback    string
}

// DefaultRetryPolicy mirrors the backend client defaults: two attempts,
// two seconds apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		Delay:       2 * time.Second,
		Fallback:    FallbackReply,
	}
}

// Do runs call until it succeeds or attempts are exhausted, then returns the
// policy's fallback value. It never returns an error: transient backend
// failures must not be able to end a turn.
func (p RetryPolicy) Do(ctx context.Context, call func() (string, error)) string {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := call()
		if err == nil {
			return text
		}
		fmt.Printf("LLM call failed (attempt %d/%d): %v\n", attempt, attempts, err)
		if attempt == attempts {
			break
		}
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return p.Fallback
		}
	}
	return p.Fallback
}
