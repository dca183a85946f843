package domain

import "context"

// RawResult is one classifier output before label normalization.
type RawResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier is the sentiment-inference collaborator: one blocking
// batch call over all comment texts of a run, returning a parallel
// result list. Model lifecycle and hardware acceleration belong to the
// implementation, not to callers.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]RawResult, error)
}
