package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("502 bad gateway")}}
}

func invalid() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"rule_id":"two"}`), Err: errors.New("schema")}}
}

func TestWithRetry_ClampsAttempts(t *testing.T) {
	for _, attempts := range []int{0, -1, -10} {
		t.Run(fmt.Sprint(attempts), func(t *testing.T) {
			mock := NewMockProvider(unavailable(), unavailable())
			_, err := WithRetry(mock, fastRetry(attempts)).Generate(context.Background(), Request{})

			var unavail *ErrProviderUnavailable
			if !errors.As(err, &unavail) {
				t.Fatalf("expected the provider error, got %v", err)
			}
			if mock.CallCount() != 1 {
				t.Errorf("calls = %d, want exactly one attempt", mock.CallCount())
			}
		})
	}
}

func TestRetryProvider_CheckedContextBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, err := WithRetry(mock, fastRetry(3)).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", mock.CallCount())
	}
}

func TestRetryProvider_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := NewMockProvider()
	mock.Respond = func(Request) MockResponse {
		cancel()
		return unavailable()
	}
	cfg := fastRetry(3)
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		invalidSeen bool
		want        bool
		wantSeen    bool
	}{
		{"unavailable", &ErrProviderUnavailable{}, false, true, false},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, false, true, false},
		{"plain error", errors.New("connection reset"), false, true, false},
		{"first invalid response", &ErrInvalidResponse{}, false, true, true},
		{"second invalid response", &ErrInvalidResponse{}, true, false, true},
		{"wrapped invalid response", fmt.Errorf("advise: %w", &ErrInvalidResponse{}), false, true, true},
		{"unavailable after invalid", &ErrProviderUnavailable{}, true, true, true},
		{"max tokens", &ErrMaxTokensExceeded{}, false, false, false},
		{"wrapped max tokens", fmt.Errorf("advise: %w", &ErrMaxTokensExceeded{}), false, false, false},
		{"canceled", context.Canceled, false, false, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := tt.invalidSeen
			if got := retryable(tt.err, &seen); got != tt.want {
				t.Errorf("retryable = %v, want %v", got, tt.want)
			}
			if seen != tt.wantSeen {
				t.Errorf("invalidSeen = %v, want %v", seen, tt.wantSeen)
			}
		})
	}
}

func TestRetryProvider_InvalidResponseOncePerCall(t *testing.T) {
	// The second invalid response stops the loop even with a transient
	// failure in between and attempts left over.
	mock := NewMockProvider(invalid(), unavailable(), invalid(), MockResponse{Content: json.RawMessage(`{}`)})
	_, err := WithRetry(mock, fastRetry(5)).Generate(context.Background(), Request{})

	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestRetryProvider_SchemaFailureRecovers(t *testing.T) {
	schema := &Schema{Name: "ok", Definition: map[string]any{
		"type":     "object",
		"required": []any{"ok"},
	}}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"nope":1}`)},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	resp, err := WithRetry(mock, fastRetry(3)).Generate(context.Background(), Request{Schema: schema})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("content = %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetryProvider_ExhaustsAttempts(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), MockResponse{Content: json.RawMessage(`{}`)})
	_, err := WithRetry(mock, fastRetry(3)).Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected the last provider error")
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestBackoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		MaxAttempts: 5,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     300 * time.Millisecond,
		Multiplier:  2.0,
	}}

	rl := fmt.Errorf("generate: %w", &ErrRateLimit{RetryAfter: 7 * time.Second})
	if got := r.backoff(0, rl); got != 7*time.Second {
		t.Errorf("rate limit wait = %s, want the server's 7s", got)
	}

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 300 * time.Millisecond},
		{6, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		lo := time.Duration(float64(tt.base) * 0.8)
		hi := time.Duration(float64(tt.base) * 1.2)
		for range 20 {
			got := r.backoff(tt.attempt, &ErrRateLimit{})
			if got < lo || got > hi {
				t.Fatalf("attempt %d wait = %s, want within [%s, %s]", tt.attempt, got, lo, hi)
			}
		}
	}
}
