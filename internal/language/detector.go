// Package language implements heuristic language detection for short
// social-media text. Statistical language ID models are calibrated on
// longer prose and fall apart on emoji-heavy comments, so classification
// combines Devanagari script detection with a transliterated Hindi
// lexicon instead.
package language

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

const minSignalLength = 3

// noisePattern strips numeric list markers and emoji/pictograph ranges
// (emoticons, symbols, transport, flags, supplemental pictographs)
// before classification.
var noisePattern = regexp.MustCompile(`[0-9]+\.` +
	`|[\x{1F600}-\x{1F64F}]` +
	`|[\x{1F300}-\x{1F5FF}]` +
	`|[\x{1F680}-\x{1F6FF}]` +
	`|[\x{1F1E0}-\x{1F1FF}]` +
	`|[\x{2702}-\x{27B0}]` +
	`|[\x{24C2}-\x{1F251}]` +
	`|[\x{1F900}-\x{1F9FF}]` +
	`|[\x{1FA00}-\x{1FA6F}]`)

// lexicon holds transliterated Hindi/Hinglish function words and common
// roots, matched as whole words only.
var lexicon = []string{
	"hai", "hain", "tha", "thi", "kar", "kya", "yeh", "woh", "mast",
	"ekdum", "bohot", "bahut", "achha", "accha", "theek", "thik",
	"karo", "karna", "kitna", "kitne", "aur", "ka", "ki", "ke",
	"nahi", "nahin", "bilkul", "sahi", "galat", "kuch", "kab",
	"kahan", "kaun", "kyun", "kaise", "abhi", "ab", "phir",
	"dekho", "dekh", "sunna", "suno", "bola", "boli", "gaya",
	"gayi", "lena", "liya", "dena", "diya", "kapde", "comfy",
}

// Detect classifies text as en, hi or hinglish. It never fails the
// batch: any internal failure degrades to en with a warning.
func Detect(text string) (lang domain.Language) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Language detection failed, defaulting to en",
				"text", truncate(text, 50),
				"reason", fmt.Sprint(r))
			lang = domain.LanguageEnglish
		}
	}()
	return classify(text)
}

func classify(text string) domain.Language {
	text = strings.ToValidUTF8(strings.TrimSpace(text), "")

	clean := strings.TrimSpace(noisePattern.ReplaceAllString(text, ""))
	if utf8.RuneCountInString(clean) < minSignalLength {
		return domain.LanguageEnglish
	}

	hasScript := containsDevanagari(text)
	lower := strings.ToLower(clean)
	tokens := strings.Fields(lower)
	hits := lexiconHits(lower)

	switch {
	case hasScript && hasLatinToken(tokens):
		return domain.LanguageHinglish
	case hasScript:
		return domain.LanguageHindi
	case hits >= 2:
		return domain.LanguageHinglish
	case hits == 1 && len(tokens) <= 5:
		return domain.LanguageHinglish
	default:
		return domain.LanguageEnglish
	}
}

// containsDevanagari reports whether text contains any rune in the
// Devanagari Unicode block (U+0900-U+097F).
func containsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

// hasLatinToken reports whether any whitespace-separated token contains
// a Latin letter.
func hasLatinToken(tokens []string) bool {
	for _, tok := range tokens {
		for _, r := range tok {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				return true
			}
		}
	}
	return false
}

// lexiconHits counts how many lexicon entries occur as whole words,
// bounded by whitespace or the string edges.
func lexiconHits(lower string) int {
	padded := " " + lower + " "
	hits := 0
	for _, word := range lexicon {
		if strings.Contains(padded, " "+word+" ") {
			hits++
		}
	}
	return hits
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
