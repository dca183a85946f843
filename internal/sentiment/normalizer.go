package sentiment

import (
	"math"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

// labelTable maps known classifier vocabularies onto the canonical
// taxonomy. XLM-RoBERTa style models return either ordinal codes
// (LABEL_0..LABEL_2) or already-canonical text, depending on the head.
var labelTable = map[string]domain.Label{
	"LABEL_0":  domain.LabelNegative,
	"LABEL_1":  domain.LabelNeutral,
	"LABEL_2":  domain.LabelPositive,
	"negative": domain.LabelNegative,
	"neutral":  domain.LabelNeutral,
	"positive": domain.LabelPositive,
}

// Normalize converts a raw classifier result into a Sentiment. Labels
// outside the known vocabulary pass through unchanged with
// Recognized=false, so unexpected vocabulary surfaces in outputs
// instead of being silently misclassified. Confidence is rounded to 4
// decimal places. Pure function.
func Normalize(raw domain.RawResult) domain.Sentiment {
	score := math.Round(raw.Score*10000) / 10000
	if label, ok := labelTable[raw.Label]; ok {
		return domain.Sentiment{Label: label, Score: score, Recognized: true}
	}
	return domain.Sentiment{Label: domain.Label(raw.Label), Score: score, Recognized: false}
}
