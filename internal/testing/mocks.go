package testing

import (
	"context"
	"sync"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/narrative"
)

// MockNarrator is a narrative.Narrator returning a canned report or error.
type MockNarrator struct {
	mu     sync.Mutex
	report narrative.NarrativeReport
	err    error
	calls  int
	last   domain.RecommendationResult
}

// NewMockNarrator creates a narrator that succeeds with summary.
func NewMockNarrator(summary string) *MockNarrator {
	return &MockNarrator{report: narrative.NarrativeReport{Summary: summary}}
}

// SetReport sets the report returned by Narrate.
func (m *MockNarrator) SetReport(report narrative.NarrativeReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.report = report
}

// SetError makes every following call fail with err.
func (m *MockNarrator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Narrate implements narrative.Narrator.
func (m *MockNarrator) Narrate(ctx context.Context, profile domain.UserProfile, result domain.RecommendationResult) (narrative.NarrativeReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.last = result
	if m.err != nil {
		return narrative.NarrativeReport{}, m.err
	}
	return m.report, nil
}

// Calls returns how many times Narrate ran.
func (m *MockNarrator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastResult returns the recommendation passed to the latest call.
func (m *MockNarrator) LastResult() domain.RecommendationResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// MockOutcomeRecorder collects narrative outcomes.
type MockOutcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

// ObserveNarrative implements narrative.OutcomeRecorder.
func (m *MockOutcomeRecorder) ObserveNarrative(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

// Outcomes returns the recorded outcomes in order.
func (m *MockOutcomeRecorder) Outcomes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.outcomes...)
}
