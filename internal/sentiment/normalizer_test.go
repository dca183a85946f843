package sentiment

import (
	"testing"

	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKnownVocabulary(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Label
	}{
		{"LABEL_0", domain.LabelNegative},
		{"LABEL_1", domain.LabelNeutral},
		{"LABEL_2", domain.LabelPositive},
		{"negative", domain.LabelNegative},
		{"neutral", domain.LabelNeutral},
		{"positive", domain.LabelPositive},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Normalize(domain.RawResult{Label: tt.raw, Score: 0.5})
			assert.Equal(t, tt.want, got.Label)
			assert.True(t, got.Recognized)
		})
	}
}

func TestNormalizeUnknownLabelPassesThrough(t *testing.T) {
	got := Normalize(domain.RawResult{Label: "LABEL_7", Score: 0.42})
	assert.Equal(t, domain.Label("LABEL_7"), got.Label)
	assert.False(t, got.Recognized)
}

func TestNormalizeRoundsScoreTo4Decimals(t *testing.T) {
	got := Normalize(domain.RawResult{Label: "positive", Score: 0.98765432})
	assert.Equal(t, 0.9877, got.Score)

	got = Normalize(domain.RawResult{Label: "negative", Score: 0.11111111})
	assert.Equal(t, 0.1111, got.Score)
}
