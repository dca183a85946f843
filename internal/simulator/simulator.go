// Package simulator perturbs the engagement source tables to mimic
// organic growth, a crisis, or a viral spike, then pokes the engine to
// refresh. It is a data producer only; the core pipeline never depends
// on it.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"

	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/pulkitj94/socialpulse/internal/metrics"
	"github.com/pulkitj94/socialpulse/internal/storage"
)

const commentTimestampLayout = "2006-01-02 15:04:05"

var (
	organicPlatforms = []string{"facebook", "instagram", "linkedin", "twitter"}
	adsPlatforms     = []string{"facebook", "google", "instagram"}
)

// Simulator runs one engagement-update cycle at a time against the data
// directory shared with the pipeline.
type Simulator struct {
	store      *storage.FileStore
	gen        domain.CommentGenerator
	clock      clockwork.Clock
	rng        *rand.Rand
	http       *resty.Client
	refreshURL string
}

func New(store *storage.FileStore, gen domain.CommentGenerator, clock clockwork.Clock, rng *rand.Rand, refreshURL string) *Simulator {
	return &Simulator{
		store:      store,
		gen:        gen,
		clock:      clock,
		rng:        rng,
		http:       resty.New(),
		refreshURL: refreshURL,
	}
}

// RunCycle appends generated comments, perturbs organic and ad metrics
// for the scenario, and fires the refresh notification.
func (s *Simulator) RunCycle(ctx context.Context, scenario domain.Scenario) error {
	slog.InfoContext(ctx, "Simulation cycle started", "scenario", scenario)

	if err := s.appendComments(ctx, scenario); err != nil {
		return err
	}
	if err := s.perturbOrganic(ctx, scenario); err != nil {
		return err
	}
	if err := s.perturbAds(ctx, scenario); err != nil {
		return err
	}

	metrics.SimulationCyclesTotal.WithLabelValues(string(scenario)).Inc()
	s.notifyRefresh(ctx)

	slog.InfoContext(ctx, "Simulation cycle complete", "scenario", scenario)
	return nil
}

func commentCount(scenario domain.Scenario) int {
	switch scenario {
	case domain.ScenarioViral:
		return 10
	case domain.ScenarioCrisis:
		return 5
	default:
		return 1
	}
}

func (s *Simulator) appendComments(ctx context.Context, scenario domain.Scenario) error {
	texts := s.gen.Generate(ctx, scenario, commentCount(scenario))

	comments := make([]domain.Comment, 0, len(texts))
	now := s.clock.Now().Format(commentTimestampLayout)
	for _, text := range texts {
		comments = append(comments, domain.Comment{
			ID:         fmt.Sprintf("C_%d", 5000+s.rng.Intn(5000)),
			PostID:     fmt.Sprintf("POST_000%d", 1+s.rng.Intn(4)),
			UserHandle: fmt.Sprintf("user_%d", 100+s.rng.Intn(900)),
			Text:       text,
			Timestamp:  now,
		})
	}

	ok, err := s.store.AppendComments(comments)
	if err != nil {
		return fmt.Errorf("append comments: %w", err)
	}
	if !ok {
		slog.WarnContext(ctx, "Comment table absent, skipping comment generation")
	}
	return nil
}

// perturbOrganic bumps engagement counters on one random post per
// platform: massive spikes for viral, high reach but no likes for
// crisis, slow growth otherwise.
func (s *Simulator) perturbOrganic(ctx context.Context, scenario domain.Scenario) error {
	for _, platform := range organicPlatforms {
		name := platform + "_organic_posts.csv"
		ok, err := s.store.UpdateTable(name, func(header []string, rows [][]string) ([][]string, error) {
			if len(rows) == 0 {
				return rows, nil
			}
			row := rows[s.rng.Intn(len(rows))]

			switch scenario {
			case domain.ScenarioViral:
				s.bump(header, row, "impressions", 5000, 15000)
				s.bump(header, row, "reach", 2000, 8000)
				s.bump(header, row, "likes", 800, 2500)
				s.bump(header, row, "shares", 100, 400)
			case domain.ScenarioCrisis:
				s.bump(header, row, "impressions", 1000, 3000)
				s.bump(header, row, "reach", 500, 1500)
				s.bump(header, row, "likes", 0, 5)
			default:
				s.bump(header, row, "impressions", 20, 100)
				s.bump(header, row, "reach", 10, 50)
				s.bump(header, row, "likes", 5, 20)
			}
			return rows, nil
		})
		if err != nil {
			return fmt.Errorf("perturb %s: %w", name, err)
		}
		if !ok {
			slog.DebugContext(ctx, "Organic listing absent, skipped", "platform", platform)
		}
	}
	return nil
}

func (s *Simulator) perturbAds(ctx context.Context, scenario domain.Scenario) error {
	clickLow, clickHigh := 5, 15
	if scenario == domain.ScenarioViral {
		clickLow, clickHigh = 200, 600
	}

	for _, platform := range adsPlatforms {
		name := platform + "_ads_ad_campaigns.csv"
		ok, err := s.store.UpdateTable(name, func(header []string, rows [][]string) ([][]string, error) {
			if len(rows) == 0 {
				return rows, nil
			}
			row := rows[s.rng.Intn(len(rows))]
			s.bump(header, row, "clicks", clickLow, clickHigh)
			s.bumpSpend(header, row, "total_spend", 2.0, 15.0)
			return rows, nil
		})
		if err != nil {
			return fmt.Errorf("perturb %s: %w", name, err)
		}
		if !ok {
			slog.DebugContext(ctx, "Ads listing absent, skipped", "platform", platform)
		}
	}
	return nil
}

// bump adds a random integer in [low, high] to a counter column,
// silently skipping columns the table does not have.
func (s *Simulator) bump(header []string, row []string, column string, low, high int) {
	i := indexOf(header, column)
	if i < 0 || i >= len(row) {
		return
	}
	current, err := strconv.Atoi(row[i])
	if err != nil {
		return
	}
	row[i] = strconv.Itoa(current + low + s.rng.Intn(high-low+1))
}

// bumpSpend adds a random amount in [low, high) rounded to cents.
func (s *Simulator) bumpSpend(header []string, row []string, column string, low, high float64) {
	i := indexOf(header, column)
	if i < 0 || i >= len(row) {
		return
	}
	current, err := strconv.ParseFloat(row[i], 64)
	if err != nil {
		return
	}
	delta := math.Round((low+s.rng.Float64()*(high-low))*100) / 100
	row[i] = strconv.FormatFloat(math.Round((current+delta)*100)/100, 'f', 2, 64)
}

// notifyRefresh fires a best-effort POST to the engine's refresh
// endpoint. Failures are ignored: the next pipeline run picks up the
// data anyway.
func (s *Simulator) notifyRefresh(ctx context.Context) {
	if s.refreshURL == "" {
		return
	}
	if _, err := s.http.R().SetContext(ctx).Post(s.refreshURL); err != nil {
		slog.DebugContext(ctx, "Refresh notification failed", "url", s.refreshURL, "error", err)
	}
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
