package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/spots"
)

type tideRow struct {
	Time     time.Time `json:"time"`
	Type     string    `json:"type"`
	HeightFt float64   `json:"heightFt"`
}

func tideTypeName(t forecast.TideType) string {
	if t == forecast.TideHigh {
		return "high"
	}
	return "low"
}

func newTidesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tides",
		Short: "List high and low tide predictions for a CO-OPS station.",
		Example: `  tidewise tides
  tidewise tides --station 8724580`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			station, _ := cmd.Flags().GetString("station")
			if station == "" {
				station = c.cfg.Upstream.DefaultStation
			}
			svc, err := c.forecast()
			if err != nil {
				return err
			}

			data, err := svc.Tides(cmd.Context(), forecast.Location{ID: station, StationID: station})
			if err != nil {
				return err
			}

			rows := make([]tideRow, 0, len(data.Predictions))
			for _, p := range data.Predictions {
				rows = append(rows, tideRow{Time: p.Time, Type: tideTypeName(p.Type), HeightFt: p.HeightFt})
			}

			out := cmd.OutOrStdout()
			if c.output() == outputJSON {
				return writeJSON(out, rows)
			}

			zone := c.cfg.Location()
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{
					r.Time.In(zone).Format("Mon Jan 2 3:04 PM"),
					r.Type,
					fmt.Sprintf("%.2f ft", r.HeightFt),
				})
			}
			if err := renderTable(out, []string{"Time", "Tide", "Height"}, table); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}

			name := data.StationName
			if name == "" {
				name = spots.StationName(station)
			}
			fmt.Fprintf(out, "Station %s %s\n", station, name)
			return nil
		},
	}
	cmd.Flags().String("station", "", "CO-OPS station ID (default: upstream.default-station)")
	return cmd
}
