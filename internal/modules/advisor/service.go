// Package advisor orchestrates a full fund analysis: the deterministic
// recommendation plus its generated narrative.
package advisor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/funds"
	"github.com/aristath/fundadvisor/internal/modules/narrative"
	"github.com/aristath/fundadvisor/internal/modules/recommendation"
)

// RecommendObserver records how long recommendations take.
type RecommendObserver interface {
	ObserveRecommend(d time.Duration)
}

// Analysis is the outcome of one Analyze call.
type Analysis struct {
	ID        string                      `json:"analysis_id"`
	Profile   domain.UserProfile          `json:"user_info"`
	Result    domain.RecommendationResult `json:"recommendations"`
	Narrative narrative.NarrativeReport   `json:"llm_analysis"`
}

// Service runs analyses against one dataset.
type Service struct {
	engine    *recommendation.Engine
	narrative *narrative.Service
	topN      int
	observer  RecommendObserver
	log       zerolog.Logger
}

// NewService creates a new advisor service. topN is the number of funds
// recommended per allocation category.
func NewService(engine *recommendation.Engine, narrativeService *narrative.Service, topN int, observer RecommendObserver, log zerolog.Logger) *Service {
	return &Service{
		engine:    engine,
		narrative: narrativeService,
		topN:      topN,
		observer:  observer,
		log:       log.With().Str("service", "advisor").Logger(),
	}
}

// Analyze recommends funds for profile and attaches a narrative. Narrative
// failures never surface here; only an invalid topN can make it fail.
func (s *Service) Analyze(ctx context.Context, profile domain.UserProfile) (Analysis, error) {
	id := uuid.NewString()

	start := time.Now()
	result, err := s.engine.Recommend(profile, s.topN)
	if err != nil {
		return Analysis{}, err
	}
	elapsed := time.Since(start)
	if s.observer != nil {
		s.observer.ObserveRecommend(elapsed)
	}

	report := s.narrative.Narrate(ctx, profile, result)

	s.log.Info().
		Str("analysis_id", id).
		Str("risk_profile", string(result.RiskProfile)).
		Int("categories", len(result.Allocations)).
		Dur("recommend_duration", elapsed).
		Msg("Analysis completed")

	return Analysis{
		ID:        id,
		Profile:   profile,
		Result:    result,
		Narrative: report,
	}, nil
}

// TopFunds ranks the funds of one category.
func (s *Service) TopFunds(category string, topN int) ([]domain.ScoredFund, error) {
	return s.engine.TopFunds(category, topN)
}

// Fund returns one fund with its search link.
func (s *Service) Fund(id string) (domain.ScoredFund, error) {
	fund, err := s.engine.Fund(id)
	if err != nil {
		return domain.ScoredFund{}, err
	}
	return domain.ScoredFund{
		FundRecord: fund,
		Score:      s.engine.Score(fund),
		SearchURL:  recommendation.SearchURL(fund.Name),
	}, nil
}

// Categories summarizes the dataset per category.
func (s *Service) Categories() []funds.CategoryStats {
	if s.engine.Dataset() == nil {
		return []funds.CategoryStats{}
	}
	return s.engine.Dataset().Stats()
}
