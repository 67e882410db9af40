package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/smartreport/smartreport/config"
)

const AppName = "smartreport"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Flakiness and performance-trend reporting for test runs",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a test command and report on its event stream",
		ArgsUsage: "-- <test command> [args...]",
		Action:    app.run,
		Flags:     configFlags(),
		Description: `Run the host test command as a child process and process the event
stream it emits.

The child is told where to write its events through the ` + eventsEnv + `
environment variable. Reporting problems are logged but never change the
child's exit code, which is always propagated.

Examples:
  smartreport run -- npx playwright test
  smartreport run -o build/report.html -- npm test`,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "ingest",
		Usage:     "Process an already-captured event stream",
		ArgsUsage: "<events-file|->",
		Action:    app.ingest,
		Flags:     configFlags(),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "history",
		Usage:  "List stored per-test history with current classification",
		Action: app.history,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "test",
				Aliases: []string{"t"},
				Usage:   "Only show tests whose key contains this substring",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of tests shown (default: 20)",
				Value:   20,
			},
		}, configFlags()...),
	})

	return app
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the smartreport.yaml config file",
			Value:   config.DefaultFile,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path of the HTML report artifact",
		},
		&cli.StringFlag{
			Name:  "json-report",
			Usage: "Also write a machine-readable JSON report to this path",
		},
		&cli.StringFlag{
			Name:  "history-file",
			Usage: "Path of the durable test history file",
		},
		&cli.IntFlag{
			Name:  "max-history-runs",
			Usage: "Maximum historical outcomes kept per test",
		},
		&cli.Float64Flag{
			Name:  "performance-threshold",
			Usage: "Fraction of the historical average a duration may deviate by before it is flagged",
		},
	}
}

func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// resolveConfig loads the config file and applies any flags the user set on
// top of it.
func (a *App) resolveConfig(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if ctx.IsSet("output") {
		cfg.OutputFile = ctx.String("output")
	}
	if ctx.IsSet("json-report") {
		cfg.JSONReportFile = ctx.String("json-report")
	}
	if ctx.IsSet("history-file") {
		cfg.HistoryFile = ctx.String("history-file")
	}
	if ctx.IsSet("max-history-runs") {
		cfg.MaxHistoryRuns = ctx.Int("max-history-runs")
	}
	if ctx.IsSet("performance-threshold") {
		cfg.PerformanceThreshold = ctx.Float64("performance-threshold")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
