package domain

// Label is a canonical sentiment class.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Language is a detected language class for a comment.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageHindi    Language = "hi"
	LanguageHinglish Language = "hinglish"
)

// PlatformGeneral is the bucket for comments whose post cannot be
// attributed to any known platform.
const PlatformGeneral = "General"

// Comment is a raw ingested engagement record. Immutable once read.
type Comment struct {
	ID         string
	PostID     string
	UserHandle string
	Text       string
	Timestamp  string
}

// Sentiment is a normalized classifier result for one comment.
// Recognized is false when the raw classifier label was outside the
// known vocabulary; Label then carries the raw string unchanged so the
// unexpected value stays visible in outputs.
type Sentiment struct {
	Label      Label
	Score      float64
	Recognized bool
}

// ClassifiedComment is a Comment enriched with sentiment, language and
// platform attribution. Recomputed in full on every pipeline run.
type ClassifiedComment struct {
	Comment
	Sentiment Sentiment
	Language  Language
	Platform  string
}
