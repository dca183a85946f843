package domain

import "context"

// Scenario selects the tone of simulated engagement activity.
type Scenario string

const (
	ScenarioNormal Scenario = "normal"
	ScenarioCrisis Scenario = "crisis"
	ScenarioViral  Scenario = "viral"
)

// CommentGenerator produces short synthetic comment texts for a
// scenario. Implementations never fail the caller: on error they
// return a small fixed fallback list instead.
type CommentGenerator interface {
	Generate(ctx context.Context, scenario Scenario, count int) []string
}
