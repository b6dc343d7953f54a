package cli

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reposcout/reposcout/pkg/history"
)

// newRankCmd creates the rank command, the primary pipeline entry point.
func newRankCmd(loadConfig configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <requirement...>",
		Short: "Search, score, and rank candidate repositories",
		Long: `Rank searches for repositories matching the requirement, scores each with
the heuristic policy, deep-reads the manifests of high scorers, and asks the
configured AI architect for a final opinion when a model credential is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			requirement := strings.Join(args, " ")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			runner := newRunner(ctx, cfg, logger)

			sp := newSpinner(ctx, "Ranking candidates for "+requirement)
			sp.Start()
			started := time.Now()
			p := newProgress(logger)
			ranked, err := runner.RunRanking(ctx, requirement)
			sp.Stop()
			if err != nil {
				return err
			}
			p.done("Ranking complete")

			if len(ranked) == 0 {
				printWarning("No candidates found for %q", requirement)
				return nil
			}

			cmd.Print(renderRanking(requirement, ranked))
			printSuccess("%d candidates ranked", len(ranked))

			// Record the run; history is best effort for the CLI.
			hist := newHistoryStore(ctx, cfg, logger)
			defer hist.Close(ctx)
			run := history.Run{
				ID:          uuid.NewString(),
				Requirement: requirement,
				Candidates:  ranked,
				StartedAt:   started,
				FinishedAt:  time.Now(),
			}
			if err := hist.Save(ctx, run); err != nil {
				logger.Warn("failed to record run", "error", err)
			}
			return nil
		},
	}
	return cmd
}
