package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tidewise/tidewise/internal/app"
	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/config"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/marine"
	"github.com/tidewise/tidewise/internal/spots"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// forecaster is the part of the forecast service the commands use.
type forecaster interface {
	Conditions(ctx context.Context, sport conditions.Sport, loc forecast.Location) (*conditions.Condition, error)
	AllConditions(ctx context.Context, loc forecast.Location) (map[conditions.Sport]*conditions.Condition, error)
	Tides(ctx context.Context, loc forecast.Location) (*forecast.TideData, error)
	WaveEnergy(ctx context.Context, loc forecast.Location) (*marine.Energy, error)
	WaveConsistency(ctx context.Context, loc forecast.Location) (*marine.Consistency, error)
	WaterVisibility(ctx context.Context, loc forecast.Location) (*marine.Visibility, error)
	Swell(ctx context.Context, loc forecast.Location) (*marine.SwellReport, error)
}

// cli holds state shared by every command. The forecast service is built
// lazily so that commands like serve-info never touch the network.
type cli struct {
	v   *viper.Viper
	cfg *config.Config
	log zerolog.Logger

	newService func(cfg *config.Config, log zerolog.Logger) (forecaster, error)
	service    forecaster
}

func newCLI() *cli {
	return &cli{
		v: config.New(),
		newService: func(cfg *config.Config, log zerolog.Logger) (forecaster, error) {
			return app.NewForecastService(app.Deps{Config: cfg, Logger: log})
		},
	}
}

func (c *cli) forecast() (forecaster, error) {
	if c.service != nil {
		return c.service, nil
	}
	svc, err := c.newService(c.cfg, c.log)
	if err != nil {
		return nil, fmt.Errorf("creating forecast service: %w", err)
	}
	c.service = svc
	return svc, nil
}

func (c *cli) output() string {
	return strings.ToLower(c.v.GetString("output"))
}

// setup reads the config file and environment, then applies flags.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if path := c.v.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
	}
	cfg, err := config.LoadFrom(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg

	switch out := c.output(); out {
	case outputTable, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", out, outputTable, outputJSON)
	}

	if c.v.GetBool("no-color") {
		color.NoColor = true
	}

	level := zerolog.WarnLevel
	if c.v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	c.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: color.NoColor}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:               "tidewise",
		Short:             "Score Miami water-sports conditions from the command line.",
		Long:              `TideWise rates surfing, kiteboarding, wakeboarding, snorkeling, paddleboarding and sailing conditions from live wind and marine forecasts.`,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to a tidewise.yaml config file")
	flags.StringP("output", "o", outputTable, "Output format: table or json")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Log upstream activity to stderr")
	for _, name := range []string{"config", "output", "no-color", "verbose"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newConditionsCmd(c),
		newSpotsCmd(c),
		newTidesCmd(c),
		newMarineCmd(c),
		newServeInfoCmd(c),
		newVersionCmd(),
	)
	return root
}

// addLocationFlags registers --spot, --lat and --lon.
func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().String("spot", spots.DefaultID, "Built-in spot ID")
	cmd.Flags().Float64("lat", 0, "Latitude; overrides --spot together with --lon")
	cmd.Flags().Float64("lon", 0, "Longitude; overrides --spot together with --lat")
}

// resolveLocation returns the coordinates given by --lat/--lon, or the
// spot named by --spot.
func resolveLocation(cmd *cobra.Command) (forecast.Location, error) {
	latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
	if latSet != lonSet {
		return forecast.Location{}, fmt.Errorf("%w: --lat and --lon must be given together", forecast.ErrMissingInput)
	}
	if latSet {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		return forecast.NewLocation(lat, lon, "")
	}

	id, _ := cmd.Flags().GetString("spot")
	spot, err := spots.Get(id)
	if err != nil {
		return forecast.Location{}, fmt.Errorf("%w: %q", err, id)
	}
	return spot.Location(), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of tidewise.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tidewise CLI\n")
			cmd.Printf("  Version: %s\n", Version)
			cmd.Printf("  Built:   %s\n", BuildTime)
		},
	}
}
