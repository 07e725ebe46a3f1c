package llm

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

// Call describes one finished Generate call.
type Call struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	Latency      time.Duration
	Err          error
}

// Recorder receives a Call after every request made through WithUsage.
type Recorder interface {
	Record(ctx context.Context, c Call)
}

// UsageProvider reports every call to a Recorder.
type UsageProvider struct {
	inner Provider
	rec   Recorder
}

// WithUsage wraps p so each call is reported to rec. A nil rec disables
// reporting.
func WithUsage(p Provider, rec Recorder) Provider {
	if rec == nil {
		return p
	}
	return &UsageProvider{inner: p, rec: rec}
}

func (u *UsageProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := u.inner.Generate(ctx, req)

	c := Call{
		Model:   u.inner.ModelID(),
		Purpose: PurposeFrom(ctx),
		Latency: time.Since(start),
		Err:     err,
	}
	if resp != nil {
		c.InputTokens = resp.Usage.InputTokens
		c.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			c.Model = resp.Model
		}
	}
	u.rec.Record(ctx, c)
	return resp, err
}

func (u *UsageProvider) ModelID() string { return u.inner.ModelID() }

// ModelUsage aggregates calls to one model.
type ModelUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	TotalLatency time.Duration
	// Cost is in USD; zero for models missing from the pricing table.
	Cost float64
}

// AvgLatency is the mean latency over all calls.
func (m ModelUsage) AvgLatency() time.Duration {
	if m.Calls == 0 {
		return 0
	}
	return m.TotalLatency / time.Duration(m.Calls)
}

// Tally is an in-memory Recorder that sums usage per model. It is safe for
// concurrent use.
type Tally struct {
	mu     sync.Mutex
	byName map[string]*ModelUsage
	logger *log.Logger
}

// NewTally returns an empty Tally. When logger is non-nil every call is
// also logged.
func NewTally(logger *log.Logger) *Tally {
	return &Tally{byName: make(map[string]*ModelUsage), logger: logger}
}

func (t *Tally) Record(_ context.Context, c Call) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.byName[c.Model]
	if !ok {
		m = &ModelUsage{Model: c.Model}
		t.byName[c.Model] = m
	}
	m.Calls++
	if c.Err != nil {
		m.Failures++
	}
	m.InputTokens += c.InputTokens
	m.OutputTokens += c.OutputTokens
	m.TotalLatency += c.Latency
	if cost := LookupCost(c.Model); cost != nil {
		m.Cost += cost.Cost(c.InputTokens, c.OutputTokens)
	}

	if t.logger != nil {
		status := "ok"
		if c.Err != nil {
			status = c.Err.Error()
		}
		t.logger.Printf("llm %s purpose=%s in=%d out=%d latency=%s: %s",
			c.Model, c.Purpose, c.InputTokens, c.OutputTokens, c.Latency.Round(time.Millisecond), status)
	}
}

// Models returns per-model usage sorted by model name.
func (t *Tally) Models() []ModelUsage {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]ModelUsage, 0, len(t.byName))
	for _, m := range t.byName {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// Total sums every model into one row named "total".
func (t *Tally) Total() ModelUsage {
	total := ModelUsage{Model: "total"}
	for _, m := range t.Models() {
		total.Calls += m.Calls
		total.Failures += m.Failures
		total.InputTokens += m.InputTokens
		total.OutputTokens += m.OutputTokens
		total.TotalLatency += m.TotalLatency
		total.Cost += m.Cost
	}
	return total
}
