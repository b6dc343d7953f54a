package scout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/reposcout/reposcout/pkg/integrations/llm"
)

// AdjudicationBonus is added to the candidate an adjudication selects.
const AdjudicationBonus = 10

const (
	adjudicationTemperature = 0.2

	adjudicationSystemPrompt = "You are a Chief Software Architect. Help me select the best open-source repository to start a new project."
)

// ChatCompleter is the model boundary the adjudicator talks to.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Adjudicator asks a language model to pick the best candidate from a
// ranked list. Every failure mode degrades to returning the input
// unchanged.
type Adjudicator struct {
	llm    ChatCompleter
	logger *log.Logger
}

// NewAdjudicator creates an adjudicator. Pass a nil completer to disable
// adjudication entirely.
func NewAdjudicator(c ChatCompleter, logger *log.Logger) *Adjudicator {
	if logger == nil {
		logger = log.Default()
	}
	return &Adjudicator{llm: c, logger: logger}
}

type decision struct {
	SelectedIndex *int   `json:"selected_index"`
	Reasoning     string `json:"reasoning"`
}

// Adjudicate returns the candidate list with the model's pick promoted to
// the front, and whether a promotion happened. The input slice is never
// modified.
func (a *Adjudicator) Adjudicate(ctx context.Context, ranked []Candidate, requirement string) ([]Candidate, bool) {
	if len(ranked) == 0 {
		return ranked, false
	}
	if a == nil || a.llm == nil {
		return ranked, false
	}

	reply, err := a.llm.Complete(ctx, adjudicationSystemPrompt, buildPrompt(ranked, requirement), adjudicationTemperature)
	if err != nil {
		a.logger.Warn("adjudication request failed, keeping heuristic order", "error", err)
		return ranked, false
	}

	var d decision
	if err := json.Unmarshal([]byte(llm.StripFences(reply)), &d); err != nil {
		a.logger.Warn("adjudication reply not parsable, keeping heuristic order", "error", err)
		return ranked, false
	}
	if d.SelectedIndex == nil || *d.SelectedIndex < 0 || *d.SelectedIndex >= len(ranked) {
		a.logger.Warn("adjudication returned invalid index, keeping heuristic order", "index", d.SelectedIndex)
		return ranked, false
	}

	idx := *d.SelectedIndex
	reasoning := d.Reasoning
	if reasoning == "" {
		reasoning = "No reason provided."
	}

	out := make([]Candidate, 0, len(ranked))
	selected := ranked[idx]
	selected.MatchScore += AdjudicationBonus
	selected.Rationale = fmt.Sprintf("[AI SELECTED: %s] ", reasoning) + selected.Rationale
	out = append(out, selected)
	for i, c := range ranked {
		if i != idx {
			out = append(out, c)
		}
	}

	a.logger.Info("adjudication selected candidate", "name", selected.Name, "index", idx)
	return out, true
}

func buildPrompt(ranked []Candidate, requirement string) string {
	lines := make([]string, 0, len(ranked))
	for i, c := range ranked {
		lines = append(lines, fmt.Sprintf(
			"Index %d:\n- Name: %s\n- Desc: %s\n- Stars: %d\n- Current Score: %d\n- Analysis: %s",
			i, c.Name, c.Description, c.Stars, c.MatchScore, c.Rationale))
	}
	return fmt.Sprintf(
		"User Requirement: %q\n\nCandidates:\n%s\n\n"+
			"Task: Select the ONE best candidate that most closely matches the requirement and is technically sound.\n"+
			`Output JSON ONLY: { "selected_index": <int>, "reasoning": "<string>" }`,
		requirement, strings.Join(lines, "\n"))
}
