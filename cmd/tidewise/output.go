package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tidewise/tidewise/internal/conditions"
)

var levelColors = map[conditions.Level]*color.Color{
	conditions.LevelExcellent: color.New(color.FgGreen, color.Bold),
	conditions.LevelGood:      color.New(color.FgGreen),
	conditions.LevelFair:      color.New(color.FgYellow),
	conditions.LevelPoor:      color.New(color.FgRed),
	conditions.LevelVeryPoor:  color.New(color.FgHiRed, color.Bold),
}

// colorLevel renders a level in its traffic-light color. color.NoColor
// turns this into a plain string.
func colorLevel(level conditions.Level) string {
	if c, ok := levelColors[level]; ok {
		return c.Sprint(string(level))
	}
	return string(level)
}

// renderTable writes rows under headers with right-aligned cells.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error writing JSON output: %w", err)
	}
	return nil
}

func formatFloat(v *float64, places int, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f %s", places, *v, unit)
}
