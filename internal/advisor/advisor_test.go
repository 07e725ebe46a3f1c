package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/llm"
)

func rules() []curriculum.Rule {
	return []curriculum.Rule{
		{ID: 1, Title: "Use possessive to pre-modify the noun"},
		{ID: 2, Title: "Use adjective to pre-modify the noun"},
	}
}

var gardenQuestion = curriculum.Question{
	ID:     "mod-sylhet-2018-b",
	Text:   "Sylhet Board, 2018, (b) --- the tea gardens attract tourists.",
	Board:  "Sylhet",
	Year:   2018,
	Answer: "Beautiful",
}

func TestSuggest_PicksCandidate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"rule_id":2,"confidence":0.8,"reasoning":"The blank precedes a noun and needs a quality word."}`),
	})
	adv := New(mock, DefaultConfig())

	s, err := adv.Suggest(context.Background(), gardenQuestion, rules())
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !s.Found() || *s.RuleID != 2 {
		t.Errorf("suggestion = %+v, want rule 2", s)
	}
	if s.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8", s.Confidence)
	}

	req := mock.Calls[0]
	if req.Schema != SuggestionSchema {
		t.Error("request did not carry the suggestion schema")
	}
	prompt := req.Messages[0].Content
	for _, want := range []string{gardenQuestion.Text, "Board: Sylhet 2018", "Expected answer: Beautiful", "- 1: Use possessive", "- 2: Use adjective"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSuggest_NullRule(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"rule_id":null,"confidence":0.2,"reasoning":"No instruction given."}`),
	})
	s, err := New(mock, DefaultConfig()).Suggest(context.Background(), gardenQuestion, rules())
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if s.Found() {
		t.Errorf("expected no rule, got %d", *s.RuleID)
	}
	if s.Reasoning == "" {
		t.Error("reasoning should be kept")
	}
}

func TestSuggest_UnknownRuleRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"rule_id":99,"confidence":0.9,"reasoning":"made up"}`),
	})
	s, err := New(mock, DefaultConfig()).Suggest(context.Background(), gardenQuestion, rules())
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if s.Found() {
		t.Errorf("rule outside candidates accepted: %d", *s.RuleID)
	}
}

func TestSuggest_RuleZero(t *testing.T) {
	candidates := []curriculum.Rule{
		{ID: 0, Title: "Use gerund"},
		{ID: 1, Title: "Use infinitive"},
	}
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"rule_id":0,"confidence":0.7,"reasoning":"The blank is the subject."}`),
	})
	s, err := New(mock, DefaultConfig()).Suggest(context.Background(), gardenQuestion, candidates)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !s.Found() || *s.RuleID != 0 {
		t.Errorf("suggestion = %+v, want rule 0", s)
	}
}

func TestSuggest_RetriesSchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"rule_id":"two","confidence":0.8,"reasoning":"adjective"}`)},
		llm.MockResponse{Content: json.RawMessage(`{"rule_id":2,"confidence":0.8,"reasoning":"adjective"}`)},
	)
	provider := llm.WithRetry(mock, llm.RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	})

	s, err := New(provider, DefaultConfig()).Suggest(context.Background(), gardenQuestion, rules())
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !s.Found() || *s.RuleID != 2 {
		t.Errorf("suggestion = %+v, want rule 2", s)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestSuggest_SecondSchemaViolationGivesUp(t *testing.T) {
	bad := llm.MockResponse{Content: json.RawMessage(`{"rule_id":"two"}`)}
	mock := llm.NewMockProvider(bad, bad, llm.MockResponse{Content: json.RawMessage(`{"rule_id":2,"confidence":0.8,"reasoning":"adjective"}`)})
	provider := llm.WithRetry(mock, llm.RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1})

	_, err := New(provider, DefaultConfig()).Suggest(context.Background(), gardenQuestion, rules())
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestSuggest_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	_, err := New(mock, DefaultConfig()).Suggest(context.Background(), gardenQuestion, rules())
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestSuggest_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"rule_id":"two"}`)})
	_, err := New(mock, DefaultConfig()).Suggest(context.Background(), gardenQuestion, rules())
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestAdviseUnmatched(t *testing.T) {
	questions := []curriculum.Question{
		{ID: "q1", Text: "(a) --- (use gerund) is a good habit."},
		{ID: "q2", Text: "FAIL (b) --- tourists."},
		{ID: "q3", Text: "(c) --- the tea gardens."},
	}
	mock := llm.NewMockProvider()
	mock.Respond = func(req llm.Request) llm.MockResponse {
		prompt := req.Messages[0].Content
		switch {
		case strings.Contains(prompt, "FAIL"):
			return llm.MockResponse{Err: errors.New("boom")}
		case strings.Contains(prompt, "gerund"):
			return llm.MockResponse{Content: json.RawMessage(`{"rule_id":null,"confidence":0.1,"reasoning":"no gerund rule"}`)}
		default:
			return llm.MockResponse{Content: json.RawMessage(`{"rule_id":2,"confidence":0.7,"reasoning":"adjective"}`)}
		}
	}
	adv := New(mock, DefaultConfig())

	got, err := AdviseUnmatched(context.Background(), adv, rules(), questions, []string{"q3", "q1", "q2", "ghost"}, 3)
	if err != nil {
		t.Fatalf("AdviseUnmatched failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d advice entries, want 4", len(got))
	}

	wantOrder := []string{"q3", "q1", "q2", "ghost"}
	for i, a := range got {
		if a.QuestionID != wantOrder[i] {
			t.Errorf("entry %d = %s, want %s", i, a.QuestionID, wantOrder[i])
		}
	}
	if got[0].Suggestion == nil || !got[0].Suggestion.Found() || *got[0].Suggestion.RuleID != 2 {
		t.Errorf("q3 suggestion = %+v", got[0].Suggestion)
	}
	if got[1].Suggestion == nil || got[1].Suggestion.Found() {
		t.Errorf("q1 suggestion = %+v", got[1].Suggestion)
	}
	if len(got[1].Hints) != 1 || got[1].Hints[0] != "use gerund" {
		t.Errorf("q1 hints = %v", got[1].Hints)
	}
	if got[2].Err == "" || got[2].Suggestion != nil {
		t.Errorf("q2 should carry its error: %+v", got[2])
	}
	if got[3].Err != "unknown question" {
		t.Errorf("ghost = %+v", got[3])
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestAdviseUnmatched_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adv := New(llm.NewMockProvider(), DefaultConfig())
	_, err := AdviseUnmatched(ctx, adv, rules(), []curriculum.Question{{ID: "q1", Text: "x"}}, []string{"q1"}, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
