// Package cmd implements the plantio command line.
package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/zalepa/plantio/chart"
	"github.com/zalepa/plantio/config"
	"github.com/zalepa/plantio/plantio"
	"github.com/zalepa/plantio/report"
)

// app is the state shared by every subcommand once the root has set it up.
type app struct {
	configPath string
	dataPath   string
	sheet      string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	store  *plantio.Store
	runID  string
	now    func() time.Time
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd(&app{}).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "plantio",
		Short: "Reforestation (plantio) charts and reports",
		Long: `plantio reads the PRF tracking spreadsheet, derives unplanted area,
expected mortality and utilization classes, and renders the dashboard charts
as a PDF report, image files, spreadsheets or a small web dashboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default "+config.DefaultFile+" when present)")
	flags.StringVarP(&a.dataPath, "data", "d", "", "tracking spreadsheet (.xlsx or .csv)")
	flags.StringVar(&a.sheet, "sheet", "", "worksheet to read (default: first)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newReportCmd(a),
		newServeCmd(a),
		newExportCmd(a),
		newSummaryCmd(a),
		newInspectCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and the table store.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.Data.Path = a.dataPath
	}
	if a.sheet != "" {
		cfg.Data.Sheet = a.sheet
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger, err = newLogger(cfg.Log.Level)
		if err != nil {
			return err
		}
	}
	if a.now == nil {
		a.now = time.Now
	}
	a.runID = uuid.NewString()
	a.logger = a.logger.With(zap.String("run", a.runID))
	a.store = plantio.NewStore(plantio.LoadOptions{Sheet: cfg.Data.Sheet}, a.logger)
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// records returns the derived, classified table of the configured source.
func (a *app) records() (*plantio.Table, error) {
	return a.store.Overview(a.cfg.Data.Path)
}

// views builds every report view of the configured source.
func (a *app) views() ([]report.View, *plantio.Table, error) {
	tbl, err := a.records()
	if err != nil {
		return nil, nil, err
	}
	views, err := report.Build(tbl.Records, report.Options{
		Projects: a.cfg.Projects,
		Size:     a.pageSize(),
	}, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build views: %w", err)
	}
	return views, tbl, nil
}

func (a *app) pageSize() chart.Size {
	return chart.Size{
		W: vg.Length(a.cfg.Report.Width) * vg.Inch,
		H: vg.Length(a.cfg.Report.Height) * vg.Inch,
	}
}
