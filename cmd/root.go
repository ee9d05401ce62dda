package cmd

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/pbf2json-go/internal/config"
	"github.com/wegman-software/pbf2json-go/internal/logger"
	"github.com/wegman-software/pbf2json-go/internal/metrics"
)

var (
	cfg             = config.DefaultConfig()
	verbose         bool
	logFile         string
	profileFile     string
	metricsInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "pbf2json-go",
	Short: "Extract objects, streets and boundaries from OSM PBF files",
	Long: `pbf2json-go derives higher-level geographic records from OSM PBF files.

Subcommands:
  objects     - raw tagged objects with derived centroid and bounds
  streets     - streets reconstructed from named way fragments, optionally
                split along administrative boundaries
  boundaries  - administrative boundary polygons per admin level

Output is JSON lines on stdout, or GeoJSON with --geojson.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg.Verbose = verbose
		cfg.LogFile = logFile
		cfg.MetricsInterval = metricsInterval
		logger.Init(verbose, logFile)

		if profileFile != "" {
			profile, err := config.LoadProfile(profileFile)
			if err != nil {
				return err
			}
			cfg.Profile = profile
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "Number of parallel workers")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile", "", "Path to YAML extraction profile (street classes, admin levels)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file for persistent logging (JSON format)")
	rootCmd.PersistentFlags().DurationVar(&metricsInterval, "metrics-interval", 0, "Interval for system metrics logging (0 = disabled)")
}

// startMetrics launches the periodic metrics collector when enabled. The
// returned stop function cancels it.
func startMetrics() func() {
	if cfg.MetricsInterval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	collector := metrics.NewCollector(cfg.MetricsInterval, logger.Get())
	go collector.Start(ctx)
	return cancel
}

func exitWithError(msg string, err error) {
	log := logger.Get()
	if err != nil {
		log.Error(msg, zap.Error(err))
	} else {
		log.Error(msg)
	}
	logger.Sync()
	os.Exit(1)
}
