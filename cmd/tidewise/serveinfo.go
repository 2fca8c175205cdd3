package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// hiddenSettings are CLI-only keys left out of the effective config.
var hiddenSettings = map[string]bool{
	"config":   true,
	"output":   true,
	"no-color": true,
	"verbose":  true,
}

func newServeInfoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-info",
		Short: "Print the effective configuration the services would start with.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := map[string]string{}
			for _, key := range c.v.AllKeys() {
				if hiddenSettings[key] {
					continue
				}
				settings[key] = fmt.Sprint(c.v.Get(key))
			}

			out := cmd.OutOrStdout()
			if c.output() == outputJSON {
				return writeJSON(out, settings)
			}

			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				rows = append(rows, []string{k, settings[k]})
			}
			if err := renderTable(out, []string{"Key", "Value"}, rows); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			if used := c.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(out, "Config file: %s\n", used)
			}
			return nil
		},
	}
}
