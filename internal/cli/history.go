package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newHistoryCmd creates the run-history command. Listing only works against
// a persistent backend; the in-memory default is empty in a fresh process.
func newHistoryCmd(loadConfig configLoader) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent ranking runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.History.MongoURI == "" {
				printInfo("No history database configured (set history.mongo_uri)")
				return nil
			}

			store := newHistoryStore(ctx, cfg, logger)
			defer store.Close(ctx)

			runs, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No recorded runs")
				return nil
			}

			for _, run := range runs {
				header := fmt.Sprintf("%s  %s", run.FinishedAt.Format("2006-01-02 15:04"), run.Requirement)
				fmt.Println(StyleTitle.Render(header))
				for i, c := range run.Candidates {
					printDetail("%d. %s (%d) %s", i+1, c.Name, c.MatchScore, c.Rationale)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to list")
	return cmd
}
