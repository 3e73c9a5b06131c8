package narrative

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/aristath/fundadvisor/internal/domain"
)

// Narrator generates a report for a profile and its recommendation.
type Narrator interface {
	Narrate(ctx context.Context, profile domain.UserProfile, result domain.RecommendationResult) (NarrativeReport, error)
}

// OutcomeRecorder receives one outcome label per Narrate call.
type OutcomeRecorder interface {
	ObserveNarrative(outcome string)
}

// Outcome labels.
const (
	OutcomeSuccess           = "success"
	OutcomeDisabled          = "disabled"
	OutcomeMissingCredential = "missing_credential"
	OutcomeTimeout           = "timeout"
	OutcomeCircuitOpen       = "circuit_open"
	OutcomeMalformed         = "malformed"
	OutcomeCanceled          = "canceled"
	OutcomeError             = "error"
)

// Config tunes Service. Zero values select defaults.
type Config struct {
	Timeout          time.Duration // per attempt, default 30s
	MaxRetries       int           // attempts after the first, default 0
	RetryBackoff     time.Duration // base backoff, doubled per retry, default 500ms
	RatePerSecond    float64       // <= 0 means unlimited
	BreakerThreshold uint32        // consecutive failures that open the breaker, default 5
	BreakerCooldown  time.Duration // open-state duration, default 60s
}

// Service calls a Narrator with timeouts, retries, rate limiting and a
// circuit breaker, and substitutes Fallback for any failure.
type Service struct {
	narrator Narrator
	cfg      Config
	breaker  *gobreaker.CircuitBreaker
	limiter  *rate.Limiter
	recorder OutcomeRecorder
	log      zerolog.Logger
}

// NewService creates a narrative service. A nil narrator always falls back.
func NewService(narrator Narrator, cfg Config, recorder OutcomeRecorder, log zerolog.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.BreakerThreshold == 0 {
		cfg.BreakerThreshold = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 60 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	log = log.With().Str("service", "narrative").Logger()
	threshold := cfg.BreakerThreshold

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "narrative",
		Timeout: cfg.BreakerCooldown,
		// A missing key is configuration, not an upstream fault
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMissingCredential)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	})

	return &Service{
		narrator: narrator,
		cfg:      cfg,
		breaker:  breaker,
		limiter:  rate.NewLimiter(limit, 1),
		recorder: recorder,
		log:      log,
	}
}

// Narrate returns the generated report, or Fallback(result) when generation
// fails for any reason. It never returns an error.
func (s *Service) Narrate(ctx context.Context, profile domain.UserProfile, result domain.RecommendationResult) NarrativeReport {
	if s.narrator == nil {
		s.record(OutcomeDisabled)
		return Fallback(result)
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 && !s.backoff(ctx, attempt) {
			break
		}
		if err := s.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		report, err := s.attempt(ctx, profile, result)
		if err == nil {
			s.record(OutcomeSuccess)
			return report
		}

		lastErr = err
		s.log.Debug().Err(err).Int("attempt", attempt+1).Msg("Narrative attempt failed")
		if !retryable(ctx, err) {
			break
		}
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}
	outcome := classify(lastErr)
	s.log.Warn().Err(lastErr).Str("outcome", outcome).Msg("Narrative generation failed, using fallback report")
	s.record(outcome)
	return Fallback(result)
}

func (s *Service) attempt(ctx context.Context, profile domain.UserProfile, result domain.RecommendationResult) (NarrativeReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.narrator.Narrate(ctx, profile, result)
	})
	if err != nil {
		return NarrativeReport{}, err
	}

	report := out.(NarrativeReport)
	report.normalize()
	return report, nil
}

// backoff sleeps before retry attempt n, returning false if ctx ends first.
func (s *Service) backoff(ctx context.Context, n int) bool {
	timer := time.NewTimer(s.cfg.RetryBackoff << (n - 1))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.ObserveNarrative(outcome)
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch {
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	}
	return true
}

func classify(err error) string {
	switch {
	case err == nil:
		return OutcomeError
	case errors.Is(err, ErrMissingCredential):
		return OutcomeMissingCredential
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return OutcomeCircuitOpen
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, domain.ErrNoStructuredBlock), errors.Is(err, ErrMalformedReport):
		return OutcomeMalformed
	default:
		return OutcomeError
	}
}
