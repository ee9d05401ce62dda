package cmd

import (
	"bufio"
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/wegman-software/pbf2json-go/internal/config"
	"github.com/wegman-software/pbf2json-go/internal/extract"
	"github.com/wegman-software/pbf2json-go/internal/output"
)

var (
	boundaryLevels    string
	boundariesGeoJSON bool
)

var boundariesCmd = &cobra.Command{
	Use:   "boundaries <input.osm.pbf>",
	Short: "Extract administrative boundaries",
	Long: `Extract administrative boundary polygons.

Administrative boundaries are stored as relations tagged
boundary=administrative with an admin_level. The meaning of each level
(state, county, district, ...) depends on the region. Without --levels the
profile's default levels are extracted.`,
	Args: cobra.ExactArgs(1),
	Run:  runBoundaries,
}

func init() {
	rootCmd.AddCommand(boundariesCmd)

	boundariesCmd.Flags().StringVarP(&boundaryLevels, "levels", "l", "", "Comma-separated admin levels (e.g. 4,6,8)")
	boundariesCmd.Flags().BoolVarP(&boundariesGeoJSON, "geojson", "g", false, "Write GeoJSON instead of JSON lines")
}

func runBoundaries(cmd *cobra.Command, args []string) {
	cfg.InputFile = args[0]
	if err := cfg.Validate(); err != nil {
		exitWithError("invalid configuration", err)
	}

	levels, err := config.ParseLevels(boundaryLevels)
	if err != nil {
		exitWithError("invalid admin levels", err)
	}

	stop := startMetrics()
	defer stop()

	file, err := os.Open(cfg.InputFile)
	if err != nil {
		exitWithError("failed to open input file", err)
	}
	defer file.Close()

	boundaries, err := extract.Boundaries(context.Background(), file, cfg, levels)
	if err != nil {
		exitWithError("boundary extraction failed", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if boundariesGeoJSON {
		err = output.WriteBoundariesGeoJSON(w, boundaries)
	} else {
		err = output.WriteBoundaries(w, boundaries)
	}
	if err != nil {
		exitWithError("failed to write boundaries", err)
	}
}
