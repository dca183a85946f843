package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/pulkitj94/socialpulse/internal/attribution"
	"github.com/pulkitj94/socialpulse/internal/correlation"
	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/pulkitj94/socialpulse/internal/language"
	"github.com/pulkitj94/socialpulse/internal/metrics"
)

// minuteLayout is the history snapshot granularity.
const minuteLayout = "2006-01-02 15:04"

// CommentSource loads the raw comment table for one run.
type CommentSource interface {
	ReadComments() ([]domain.Comment, error)
}

// OutputSink persists the per-run outputs: the detailed table and the
// summary are fully overwritten, the history log is append-only.
type OutputSink interface {
	WriteDetailed(comments []domain.ClassifiedComment) error
	WriteSummary(summaries []domain.PlatformSummary) error
	AppendHistory(timestamp string, summaries []domain.PlatformSummary) error
}

// Result describes one completed pipeline run.
type Result struct {
	Comments       int                      `json:"comments"`
	Summaries      []domain.PlatformSummary `json:"summaries"`
	HistorySkipped bool                     `json:"history_skipped"`
}

// Pipeline runs the full batch: load comments, classify sentiment and
// language, attribute platforms, aggregate, persist. Single-threaded by
// design; one run processes one full snapshot of the comment table.
type Pipeline struct {
	source     CommentSource
	posts      attribution.PostSource
	classifier domain.Classifier
	sink       OutputSink
	clock      clockwork.Clock
}

func NewPipeline(source CommentSource, posts attribution.PostSource, classifier domain.Classifier, sink OutputSink, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		source:     source,
		posts:      posts,
		classifier: classifier,
		sink:       sink,
		clock:      clock,
	}
}

// Run executes one pipeline run to completion. A missing or empty
// comment table aborts before any output is touched. Duplicate history
// minutes are skipped, not failed.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if _, ok := correlation.RunID(ctx); !ok {
		ctx = correlation.WithRunID(ctx, correlation.NewRunID())
	}
	start := p.clock.Now()

	result, err := p.run(ctx)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("aborted").Inc()
		return nil, err
	}

	metrics.PipelineRunsTotal.WithLabelValues("success").Inc()
	metrics.PipelineRunDuration.Observe(p.clock.Since(start).Seconds())
	return result, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	comments, err := p.source.ReadComments()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			slog.WarnContext(ctx, "Comment table is empty, aborting run")
		}
		return nil, err
	}
	slog.InfoContext(ctx, "Pipeline run started", "comments", len(comments))

	classified, err := p.classify(ctx, comments)
	if err != nil {
		return nil, err
	}

	registry, err := attribution.BuildRegistry(p.posts)
	if err != nil {
		return nil, fmt.Errorf("build post registry: %w", err)
	}
	for i := range classified {
		classified[i].Platform = registry.Resolve(classified[i].PostID)
	}

	summaries := Aggregate(classified)

	if err := p.sink.WriteDetailed(classified); err != nil {
		return nil, fmt.Errorf("write detailed table: %w", err)
	}
	if err := p.sink.WriteSummary(summaries); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	timestamp := p.clock.Now().Format(minuteLayout)
	skipped := false
	if err := p.sink.AppendHistory(timestamp, summaries); err != nil {
		if !errors.Is(err, domain.ErrDuplicateTimestamp) {
			return nil, fmt.Errorf("append history: %w", err)
		}
		slog.WarnContext(ctx, "Skipping history update, timestamp already exists", "timestamp", timestamp)
		metrics.HistoryAppendsTotal.WithLabelValues("skipped").Inc()
		skipped = true
	} else {
		metrics.HistoryAppendsTotal.WithLabelValues("written").Inc()
	}

	metrics.CommentsProcessedTotal.Add(float64(len(classified)))
	slog.InfoContext(ctx, "Pipeline run complete",
		"comments", len(classified),
		"platforms", len(summaries),
		"history_skipped", skipped)

	return &Result{
		Comments:       len(classified),
		Summaries:      summaries,
		HistorySkipped: skipped,
	}, nil
}

// classify runs the single blocking inference batch over all comment
// texts, then normalizes labels and tags languages.
func (p *Pipeline) classify(ctx context.Context, comments []domain.Comment) ([]domain.ClassifiedComment, error) {
	texts := make([]string, len(comments))
	for i, c := range comments {
		texts[i] = c.Text
	}

	results, err := p.classifier.Classify(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("sentiment inference: %w", err)
	}
	if len(results) != len(comments) {
		return nil, fmt.Errorf("sentiment inference: got %d results for %d texts", len(results), len(comments))
	}

	classified := make([]domain.ClassifiedComment, len(comments))
	for i, c := range comments {
		sentiment := Normalize(results[i])
		if !sentiment.Recognized {
			slog.WarnContext(ctx, "Unrecognized classifier label passed through",
				"label", results[i].Label, "comment_id", c.ID)
			metrics.UnrecognizedLabelsTotal.Inc()
		}

		lang := language.Detect(c.Text)
		metrics.LanguageDetectedTotal.WithLabelValues(string(lang)).Inc()

		classified[i] = domain.ClassifiedComment{
			Comment:   c,
			Sentiment: sentiment,
			Language:  lang,
		}
	}
	return classified, nil
}
