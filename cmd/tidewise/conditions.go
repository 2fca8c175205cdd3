package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
)

// conditionSummary is the CLI view of a scored condition.
type conditionSummary struct {
	Sport       string   `json:"sport"`
	Location    string   `json:"location"`
	Score       int      `json:"score"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
	WindMph     *float64 `json:"windMph,omitempty"`
	GustsMph    *float64 `json:"gustsMph,omitempty"`
	WaveFt      *float64 `json:"waveFt,omitempty"`
	PeriodS     *float64 `json:"periodS,omitempty"`
	BestTime    string   `json:"bestTime,omitempty"`
	BestScore   *int     `json:"bestScore,omitempty"`
}

func summarize(loc forecast.Location, c *conditions.Condition) conditionSummary {
	s := conditionSummary{
		Sport:       string(c.Sport),
		Location:    loc.ID,
		Score:       c.Score,
		Level:       string(c.Level),
		Description: c.Description,
		WindMph:     c.Display.WindSpeedMph,
		GustsMph:    c.Display.WindGustsMph,
		WaveFt:      c.Display.WaveHeightFt,
		PeriodS:     c.Display.WavePeriodS,
	}
	if b := c.Best; b != nil {
		score := b.Score
		s.BestTime = b.Formatted
		s.BestScore = &score
	}
	return s
}

func newConditionsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conditions [sport]",
		Short: "Score current conditions for one sport, or all of them.",
		Example: `  tidewise conditions kiteboarding --spot crandon-park
  tidewise conditions --lat 25.76 --lon -80.13 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := resolveLocation(cmd)
			if err != nil {
				return err
			}
			svc, err := c.forecast()
			if err != nil {
				return err
			}

			var results []*conditions.Condition
			if len(args) == 1 {
				sport, err := conditions.ParseSport(args[0])
				if err != nil {
					return err
				}
				cond, err := svc.Conditions(cmd.Context(), sport, loc)
				if err != nil {
					return err
				}
				results = append(results, cond)
			} else {
				all, err := svc.AllConditions(cmd.Context(), loc)
				if err != nil {
					return err
				}
				for _, sport := range conditions.Sports() {
					if cond, ok := all[sport]; ok {
						results = append(results, cond)
					}
				}
			}

			if len(results) == 0 {
				return forecast.ErrNoData
			}

			summaries := make([]conditionSummary, 0, len(results))
			for _, cond := range results {
				summaries = append(summaries, summarize(loc, cond))
			}

			out := cmd.OutOrStdout()
			if c.output() == outputJSON {
				return writeJSON(out, summaries)
			}

			rows := make([][]string, 0, len(results))
			for i, cond := range results {
				s := summaries[i]
				best := "-"
				if s.BestScore != nil {
					best = fmt.Sprintf("%s (%d)", s.BestTime, *s.BestScore)
				}
				rows = append(rows, []string{
					s.Sport,
					strconv.Itoa(s.Score),
					colorLevel(cond.Level),
					formatFloat(s.WindMph, 1, "mph"),
					formatFloat(s.WaveFt, 1, "ft"),
					best,
				})
			}
			if err := renderTable(out, []string{"Sport", "Score", "Level", "Wind", "Waves", "Best Time"}, rows); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			name := loc.Name
			if name == "" {
				name = loc.ID
			}
			fmt.Fprintf(out, "Conditions for %s at %s\n", name, results[0].Timestamp.In(c.cfg.Location()).Format("Mon Jan 2 3:04 PM"))
			return nil
		},
	}
	addLocationFlags(cmd)
	return cmd
}
