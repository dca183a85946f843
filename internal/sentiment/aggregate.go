package sentiment

import (
	"math"
	"sort"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

// neutralWeight makes neutral comments count as half-positive signal:
// absence of negativity is itself a weak positive indicator for brand
// health.
const neutralWeight = 0.5

// Aggregate folds classified comments into one summary per platform,
// ordered by platform name. Platforms absent from the batch are simply
// not emitted. Distribution percentages are rounded to 1 decimal
// independently (no renormalization, small drift from 100 is accepted);
// the health score is rounded to 2 decimals.
func Aggregate(comments []domain.ClassifiedComment) []domain.PlatformSummary {
	type counts struct {
		total, pos, neu, neg int
	}

	groups := make(map[string]*counts)
	for _, c := range comments {
		g, ok := groups[c.Platform]
		if !ok {
			g = &counts{}
			groups[c.Platform] = g
		}
		g.total++
		switch c.Sentiment.Label {
		case domain.LabelPositive:
			g.pos++
		case domain.LabelNeutral:
			g.neu++
		case domain.LabelNegative:
			g.neg++
		}
	}

	platforms := make([]string, 0, len(groups))
	for p := range groups {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	summaries := make([]domain.PlatformSummary, 0, len(platforms))
	for _, p := range platforms {
		g := groups[p]
		pos := float64(g.pos) / float64(g.total) * 100
		neu := float64(g.neu) / float64(g.total) * 100
		neg := float64(g.neg) / float64(g.total) * 100

		summaries = append(summaries, domain.PlatformSummary{
			Platform:    p,
			HealthScore: round2(pos + neutralWeight*neu),
			Distribution: domain.Distribution{
				Positive: round1(pos),
				Neutral:  round1(neu),
				Negative: round1(neg),
			},
			TotalComments: g.total,
		})
	}
	return summaries
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
