package scout

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultWorkers bounds the per-stage fan-out when Runner.Workers is unset.
const DefaultWorkers = 4

// Runner drives the ranking pipeline: discover, score, inspect, adjudicate.
// Stage degradation (failed search, skipped inspection, unavailable model)
// never fails a run; only context cancellation does.
type Runner struct {
	Source      *Source
	Scorer      *Scorer
	Inspector   *Inspector
	Adjudicator *Adjudicator
	Logger      *log.Logger

	// Workers bounds the concurrent scoring and inspection fan-out.
	Workers int
}

// RunRanking produces the ranked candidate list for a requirement.
func (r *Runner) RunRanking(ctx context.Context, requirement string) ([]Candidate, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	source := r.Source
	if source == nil {
		// No search client; discovery degrades to the built-in set.
		source = NewSource(nil, "", logger)
	}
	scorer := r.Scorer
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	start := time.Now()
	logger.Info("ranking started", "requirement", requirement)

	candidates := source.Discover(ctx, requirement)
	if len(candidates) == 0 {
		return []Candidate{}, ctx.Err()
	}
	logger.Info("candidates discovered", "count", len(candidates))

	scored := make([]Candidate, len(candidates))
	err := forEach(ctx, workers, len(candidates), func(i int) {
		c := candidates[i]
		c.MatchScore, c.Rationale = scorer.Score(c, requirement)
		scored[i] = c
	})
	if err != nil {
		return nil, err
	}
	sortByScore(scored)

	if r.Inspector != nil {
		err := forEach(ctx, workers, len(scored), func(i int) {
			if scored[i].MatchScore < InspectThreshold {
				return
			}
			enh := r.Inspector.Inspect(ctx, scored[i])
			if !enh.Applied {
				logger.Warn("inspection skipped", "candidate", scored[i].Name, "reason", enh.SkipReason)
				return
			}
			scored[i].MatchScore = enh.Score
			scored[i].Rationale = enh.Rationale
		})
		if err != nil {
			return nil, err
		}
		sortByScore(scored)
	}

	if r.Adjudicator != nil {
		var promoted bool
		scored, promoted = r.Adjudicator.Adjudicate(ctx, scored, requirement)
		if !promoted {
			logger.Info("adjudication not applied, keeping heuristic order")
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("ranking finished", "count", len(scored), "duration", time.Since(start))
	return scored, nil
}

// forEach runs fn for every index in [0, n) across a bounded worker pool.
// It returns the context error if the run is cancelled; started items
// finish either way.
func forEach(ctx context.Context, workers, n int, fn func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	if workers > n {
		workers = n
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case idx <- i:
		case <-ctx.Done():
			close(idx)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(idx)
	wg.Wait()
	return ctx.Err()
}
