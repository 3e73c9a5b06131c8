// Package di provides dependency injection type definitions.
//
// The Container holds every application dependency and is the single source
// of truth for service instances. It is passed to the server and the CLI.
package di

import (
	"github.com/aristath/fundadvisor/internal/metrics"
	"github.com/aristath/fundadvisor/internal/modules/advisor"
	"github.com/aristath/fundadvisor/internal/modules/allocation"
	"github.com/aristath/fundadvisor/internal/modules/funds"
	"github.com/aristath/fundadvisor/internal/modules/narrative"
	"github.com/aristath/fundadvisor/internal/modules/ranking"
	"github.com/aristath/fundadvisor/internal/modules/recommendation"
	"github.com/aristath/fundadvisor/internal/modules/scoring/scorers"
)

// Container holds all application dependencies
type Container struct {
	// Data
	Dataset       *funds.Dataset
	DatasetSource string

	// Core
	FundScorer *scorers.FundScorer
	Ranker     *ranking.Ranker
	Planner    *allocation.Planner
	Engine     *recommendation.Engine

	// Narrative
	Narrator         narrative.Narrator
	NarrativeService *narrative.Service

	// Orchestration
	AdvisorService *advisor.Service

	// Observability
	Metrics *metrics.Registry
}
