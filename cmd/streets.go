package cmd

import (
	"bufio"
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/wegman-software/pbf2json-go/internal/extract"
	"github.com/wegman-software/pbf2json-go/internal/output"
)

var (
	streetName     string
	streetBoundary int
	streetsGeoJSON bool
)

var streetsCmd = &cobra.Command{
	Use:   "streets <input.osm.pbf>",
	Short: "Extract clustered streets",
	Long: `Reconstruct streets from named way fragments.

Way fragments sharing a name tag are clustered by spatial adjacency into
street entities. With --boundary L the administrative boundaries of admin
level L are loaded from the same file and streets are split along them.`,
	Args: cobra.ExactArgs(1),
	Run:  runStreets,
}

func init() {
	rootCmd.AddCommand(streetsCmd)

	streetsCmd.Flags().StringVarP(&streetName, "name", "n", "", "Only extract streets with this name")
	streetsCmd.Flags().IntVarP(&streetBoundary, "boundary", "b", -1, "Split streets along boundaries of this admin level")
	streetsCmd.Flags().BoolVarP(&streetsGeoJSON, "geojson", "g", false, "Write GeoJSON instead of JSON lines")
}

func runStreets(cmd *cobra.Command, args []string) {
	cfg.InputFile = args[0]
	if err := cfg.Validate(); err != nil {
		exitWithError("invalid configuration", err)
	}

	stop := startMetrics()
	defer stop()

	file, err := os.Open(cfg.InputFile)
	if err != nil {
		exitWithError("failed to open input file", err)
	}
	defer file.Close()

	streets, err := extract.Streets(context.Background(), file, cfg, streetName, streetBoundary)
	if err != nil {
		exitWithError("street extraction failed", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if streetsGeoJSON {
		err = output.WriteStreetsGeoJSON(w, streets)
	} else {
		err = output.WriteStreets(w, streets)
	}
	if err != nil {
		exitWithError("failed to write streets", err)
	}
}
