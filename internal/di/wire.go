// Package di provides dependency injection wiring and initialization.
package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/fundadvisor/internal/config"
	"github.com/aristath/fundadvisor/internal/metrics"
	"github.com/aristath/fundadvisor/internal/modules/advisor"
	"github.com/aristath/fundadvisor/internal/modules/allocation"
	"github.com/aristath/fundadvisor/internal/modules/funds"
	"github.com/aristath/fundadvisor/internal/modules/narrative"
	"github.com/aristath/fundadvisor/internal/modules/ranking"
	"github.com/aristath/fundadvisor/internal/modules/recommendation"
	"github.com/aristath/fundadvisor/internal/modules/scoring/scorers"
)

// Wire initializes all dependencies and returns a fully configured container
// Order of operations:
// 1. Load the fund dataset (fatal for the caller on failure)
// 2. Initialize core services
// 3. Initialize narrative and orchestration services
func Wire(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{
		Metrics: metrics.New(),
	}

	// Step 1: Load dataset
	if err := InitializeDataset(ctx, container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize dataset: %w", err)
	}

	// Step 2 and 3: Services
	InitializeServices(container, cfg, log)

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}

// InitializeDataset loads the dataset named by cfg.FundDataset.
func InitializeDataset(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	opts := funds.LoadOptions{Log: log}
	if cfg.S3 != nil {
		opts.S3 = cfg.S3.ToFundsConfig()
	}

	dataset, err := funds.LoadDataset(ctx, cfg.FundDataset, opts)
	if err != nil {
		return err
	}

	container.Dataset = dataset
	container.DatasetSource = cfg.FundDataset
	container.Metrics.SetDatasetSize(dataset.Len())

	log.Info().
		Str("source", cfg.FundDataset).
		Int("funds", dataset.Len()).
		Strs("categories", dataset.Categories()).
		Msg("Fund dataset ready")

	return nil
}

// InitializeServices builds every service on top of a loaded dataset.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.FundScorer = scorers.NewFundScorer()
	container.Ranker = ranking.NewRanker(container.FundScorer)
	container.Planner = allocation.NewPlanner()
	container.Engine = recommendation.NewEngine(container.Dataset, container.Planner, container.Ranker)

	narrativeCfg := cfg.Narrative
	if narrativeCfg == nil {
		narrativeCfg = &config.NarrativeConfig{}
	}
	if narrativeCfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, analyses will use the fallback narrative")
	}

	container.Narrator = narrative.NewOpenAINarrator(narrativeCfg.ToOpenAIConfig())
	container.NarrativeService = narrative.NewService(
		container.Narrator,
		narrativeCfg.ToServiceConfig(),
		container.Metrics,
		log,
	)

	container.AdvisorService = advisor.NewService(
		container.Engine,
		container.NarrativeService,
		cfg.TopNPerCategory,
		container.Metrics,
		log,
	)
}
