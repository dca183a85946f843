package domain

// Distribution holds per-class percentages of a platform's comments.
// Each value is rounded to 1 decimal independently, so the three may
// drift slightly from summing to exactly 100.
type Distribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// PlatformSummary is the per-platform aggregation result for one run.
// Platforms with zero comments in the batch get no summary at all:
// "no data" and "certain zero sentiment" must not be conflated.
type PlatformSummary struct {
	Platform      string       `json:"platform"`
	HealthScore   float64      `json:"health_score"`
	Distribution  Distribution `json:"distribution"`
	TotalComments int          `json:"total_comments"`
}

// HistoryRecord is one minute-granularity health score snapshot.
// The only entity with cross-run persistent identity.
type HistoryRecord struct {
	Timestamp   string  `json:"timestamp"`
	Platform    string  `json:"platform"`
	HealthScore float64 `json:"health_score"`
}
