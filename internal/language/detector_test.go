package language

import (
	"testing"

	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Language
	}{
		{"plain english", "Great quality!", domain.LanguageEnglish},
		{"two lexicon hits", "mast product, bilkul sahi", domain.LanguageHinglish},
		{"devanagari only", "यह बहुत अच्छा है", domain.LanguageHindi},
		{"devanagari mixed with latin", "yeh product बहुत अच्छा hai", domain.LanguageHinglish},
		{"emoji only", "😍😍😍", domain.LanguageEnglish},
		{"empty", "", domain.LanguageEnglish},
		{"whitespace only", "   ", domain.LanguageEnglish},
		{"too short after cleaning", "1. 😂ok", domain.LanguageEnglish},
		{"single hit short text", "delivery nahi hui", domain.LanguageHinglish},
		{"single hit long text", "the ka sound appears once in this much longer english sentence", domain.LanguageEnglish},
		{"lexicon word as substring only", "karma and karaoke market", domain.LanguageEnglish},
		{"numeric list marker stripped", "1. bahut sahi collection", domain.LanguageHinglish},
		{"longer english sentence", "Absolutely loving the new sustainable collection, well done team", domain.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	text := "mast collection hai, ekdum perfect 😍"
	first := Detect(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Detect(text))
	}
}

func TestDetectMalformedInput(t *testing.T) {
	// Invalid UTF-8 must degrade to en, never panic.
	assert.Equal(t, domain.LanguageEnglish, Detect(string([]byte{0xff, 0xfe, 0xfd})))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	long := make([]rune, 60)
	for i := range long {
		long[i] = 'x'
	}
	got := truncate(string(long), 50)
	assert.Len(t, []rune(got), 53) // 50 + "..."
}
