// Package generator produces short synthetic social-media comments for
// the simulator via an LLM, with a fixed fallback when the model call
// fails. Only the simulator uses this; the core pipeline never does.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/pulkitj94/socialpulse/internal/metrics"
)

var scenarioPrompts = map[domain.Scenario]string{
	domain.ScenarioNormal: "Generate a mix of short positive and neutral social media comments for a sustainable clothing brand. Use some Hinglish.",
	domain.ScenarioCrisis: "Generate angry customer complaints about a website crash, broken items, or shipping delays for a brand.",
	domain.ScenarioViral:  "Generate highly excited, fan-girl style comments about a new sustainable collection launch. Use 'Love this!', 'Finally!', and lots of emojis.",
}

// fallbackComments is returned whenever the model call fails, so a dead
// or unconfigured LLM never stalls the simulation.
var fallbackComments = []string{
	"Great quality!",
	"When is the next sale?",
	"Delivery was slow.",
}

// LLMGenerator generates comments through a langchaingo model.
type LLMGenerator struct {
	model llms.Model
}

// New builds an LLMGenerator backed by the OpenAI API.
func New(apiKey, model string) (*LLMGenerator, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return &LLMGenerator{model: llm}, nil
}

// NewWithModel builds an LLMGenerator around an existing model.
func NewWithModel(model llms.Model) *LLMGenerator {
	return &LLMGenerator{model: model}
}

// Static always returns the fixed fallback comments. Used when no API
// key is configured.
type Static struct{}

func (Static) Generate(_ context.Context, _ domain.Scenario, _ int) []string {
	return fallbackComments
}

// Generate returns count short comment lines for the scenario. On any
// model failure it logs a warning and returns the fixed fallback list.
func (g *LLMGenerator) Generate(ctx context.Context, scenario domain.Scenario, count int) []string {
	prompt, ok := scenarioPrompts[scenario]
	if !ok {
		prompt = scenarioPrompts[domain.ScenarioNormal]
	}
	prompt = fmt.Sprintf("%s Return %d comments as a simple list, one per line. Max 15 words per comment. Use emojis.", prompt, count)

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		slog.Warn("Comment generation failed, using fallback list", "scenario", scenario, "error", err)
		metrics.GeneratorFallbacksTotal.Inc()
		return fallbackComments
	}

	lines := parseLines(completion)
	if len(lines) == 0 {
		slog.Warn("Comment generation returned no usable lines, using fallback list", "scenario", scenario)
		metrics.GeneratorFallbacksTotal.Inc()
		return fallbackComments
	}
	return lines
}

// parseLines splits a completion into trimmed, non-empty comment lines,
// dropping list markers the model tends to prepend.
func parseLines(completion string) []string {
	var lines []string
	for _, line := range strings.Split(completion, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(trimListNumber(line))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// trimListNumber strips a leading "N." or "N)" marker.
func trimListNumber(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return line[i+1:]
	}
	return line
}
