package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/spots"
)

// spotReport is every sport scored at one spot.
type spotReport struct {
	Spot   string                      `json:"spot"`
	Name   string                      `json:"name"`
	Region string                      `json:"region"`
	Scores map[string]conditionSummary `json:"scores"`
	Error  string                      `json:"error,omitempty"`
}

func newSpotsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spots",
		Short: "Score every sport at every built-in spot.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			svc, err := c.forecast()
			if err != nil {
				return err
			}

			all := spots.All()
			reports, err := scoreSpots(cmd.Context(), svc, all, workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.output() == outputJSON {
				return writeJSON(out, reports)
			}

			headers := []string{"Spot", "Region"}
			for _, sport := range conditions.Sports() {
				headers = append(headers, string(sport))
			}
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				row := []string{r.Name, r.Region}
				for _, sport := range conditions.Sports() {
					s, ok := r.Scores[string(sport)]
					if !ok {
						row = append(row, "-")
						continue
					}
					row = append(row, strconv.Itoa(s.Score)+" "+colorLevel(conditions.Level(s.Level)))
				}
				rows = append(rows, row)
			}
			if err := renderTable(out, headers, rows); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}

			failed := 0
			for _, r := range reports {
				if r.Error != "" {
					failed++
				}
			}
			fmt.Fprintf(out, "Scored %d spots (%d unavailable)\n", len(reports)-failed, failed)
			return nil
		},
	}
	cmd.Flags().Int("workers", 4, "Spots scored concurrently")
	return cmd
}

// scoreSpots scores every spot with at most workers in flight. A spot that
// cannot be scored is reported with its error rather than failing the run.
func scoreSpots(ctx context.Context, svc forecaster, all []spots.Spot, workers int) ([]spotReport, error) {
	if workers < 1 {
		workers = 1
	}
	reports := make([]spotReport, len(all))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range all {
		g.Go(func() error {
			loc := s.Location()
			report := spotReport{Spot: s.ID, Name: s.Name, Region: s.Region, Scores: map[string]conditionSummary{}}

			scored, err := svc.AllConditions(ctx, loc)
			if err != nil {
				report.Error = err.Error()
			}
			for sport, cond := range scored {
				report.Scores[string(sport)] = summarize(loc, cond)
			}

			reports[i] = report
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
