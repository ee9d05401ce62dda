package cmd

import (
	"bufio"
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/wegman-software/pbf2json-go/internal/extract"
	"github.com/wegman-software/pbf2json-go/internal/filter"
	"github.com/wegman-software/pbf2json-go/internal/output"
)

var (
	objectTags        string
	retainCoordinates bool
)

var objectsCmd = &cobra.Command{
	Use:   "objects <input.osm.pbf>",
	Short: "Extract raw objects with derived geometry",
	Long: `Extract nodes, ways and relations with derived centroid and bounds.

Objects are selected with a tag selector: comma-separated OR-groups of
'+'-separated conditions, where a condition is a tag key (presence) or
key~value (exact match). For example:

  pbf2json-go objects city.osm.pbf --tags "amenity~fountain+tourism,amenity~townhall"`,
	Args: cobra.ExactArgs(1),
	Run:  runObjects,
}

func init() {
	rootCmd.AddCommand(objectsCmd)

	objectsCmd.Flags().StringVarP(&objectTags, "tags", "t", "", "Tag selector (empty = all objects)")
	objectsCmd.Flags().BoolVarP(&retainCoordinates, "retain-coordinates", "r", false, "Keep resolved coordinate lists in the output")
}

func runObjects(cmd *cobra.Command, args []string) {
	cfg.InputFile = args[0]
	if err := cfg.Validate(); err != nil {
		exitWithError("invalid configuration", err)
	}

	var groups []filter.Group
	if objectTags != "" {
		groups = filter.Parse(objectTags)
	}

	stop := startMetrics()
	defer stop()

	file, err := os.Open(cfg.InputFile)
	if err != nil {
		exitWithError("failed to open input file", err)
	}
	defer file.Close()

	records, err := extract.Objects(context.Background(), file, cfg, groups, retainCoordinates)
	if err != nil {
		exitWithError("object extraction failed", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if err := output.WriteObjects(w, records); err != nil {
		exitWithError("failed to write objects", err)
	}
}
