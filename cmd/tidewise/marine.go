package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewise/tidewise/internal/marine"
)

// marineReport gathers the wave analytics for one location. Each part is
// nil when it could not be computed.
type marineReport struct {
	Location    string              `json:"location"`
	Energy      *marine.Energy      `json:"energy"`
	Consistency *marine.Consistency `json:"consistency"`
	Visibility  *marine.Visibility  `json:"visibility"`
	Swell       *marine.SwellReport `json:"swell"`
}

func newMarineCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marine",
		Short: "Summarize wave energy, consistency, visibility and swell.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := resolveLocation(cmd)
			if err != nil {
				return err
			}
			svc, err := c.forecast()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			report := marineReport{Location: loc.ID}
			var errEnergy, errConsistency, errVisibility, errSwell error
			report.Energy, errEnergy = svc.WaveEnergy(ctx, loc)
			report.Consistency, errConsistency = svc.WaveConsistency(ctx, loc)
			report.Visibility, errVisibility = svc.WaterVisibility(ctx, loc)
			report.Swell, errSwell = svc.Swell(ctx, loc)
			if errEnergy != nil && errConsistency != nil && errVisibility != nil && errSwell != nil {
				return errors.Join(errEnergy, errConsistency, errVisibility, errSwell)
			}
			if err := errors.Join(errEnergy, errConsistency, errVisibility, errSwell); err != nil {
				c.log.Warn().Err(err).Str("location", loc.ID).Msg("marine summary incomplete")
			}

			out := cmd.OutOrStdout()
			if c.output() == outputJSON {
				return writeJSON(out, report)
			}

			rows := [][]string{
				marineRow("Wave energy", report.Energy != nil, func() (string, string) {
					e := report.Energy
					return e.Level, fmt.Sprintf("%.1f kJ/m², %.1f kW/m", e.EnergyKJ, e.PowerKW)
				}),
				marineRow("Consistency", report.Consistency != nil, func() (string, string) {
					cs := report.Consistency
					return cs.Level, fmt.Sprintf("score %.0f, %.1f m @ %.0f s", cs.Score, cs.AvgHeightM, cs.AvgPeriodS)
				}),
				marineRow("Visibility", report.Visibility != nil, func() (string, string) {
					v := report.Visibility
					return v.Level, fmt.Sprintf("%.0f ft", v.Feet)
				}),
				marineRow("Swell", report.Swell != nil, func() (string, string) {
					p, s := report.Swell.Primary, report.Swell.Secondary
					return p.Cardinal, fmt.Sprintf("%.1f m @ %.0f s, secondary %.1f m @ %.0f s", p.HeightM, p.PeriodS, s.HeightM, s.PeriodS)
				}),
			}
			if err := renderTable(out, []string{"Metric", "Level", "Detail"}, rows); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			return nil
		},
	}
	addLocationFlags(cmd)
	return cmd
}

func marineRow(name string, ok bool, detail func() (string, string)) []string {
	if !ok {
		return []string{name, "-", "unavailable"}
	}
	level, text := detail()
	return []string{name, level, text}
}
