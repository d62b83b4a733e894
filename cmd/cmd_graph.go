package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/logger"
)

var graphOptions struct {
	center   string
	radiusKm float64
	size     int
	out      string
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build a grid lattice and save it for later searches",
	Long: `
graph writes a grid lattice around --center to --out. Files ending in .gob
are written as gob snapshots, anything else as node-link JSON. The result can
be passed to "route --graph" or set as GRAPH_FILE for the server.
`,
	RunE: func(_ *cobra.Command, _ []string) error {
		center, err := parseCoordinate(graphOptions.center)
		if err != nil {
			return err
		}
		if graphOptions.size <= 0 {
			return fmt.Errorf("size must be positive, got %d", graphOptions.size)
		}

		g := graphs.BuildGrid(center, graphOptions.radiusKm, graphOptions.size)
		if err := graphs.SaveGraphToFile(g, graphOptions.out); err != nil {
			return err
		}
		logger.L().Info("graph_saved",
			"path", graphOptions.out,
			"nodes", g.Len(),
			"edges", g.EdgeCount(),
		)
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphOptions.center, "center", "", "lattice center as lat,lng")
	graphCmd.Flags().Float64Var(&graphOptions.radiusKm, "radius", 5, "half-extent of the lattice in km")
	graphCmd.Flags().IntVar(&graphOptions.size, "size", 15, "nodes per side")
	graphCmd.Flags().StringVar(&graphOptions.out, "out", "graph.gob", "output file (.gob or .json)")
	graphCmd.MarkFlagRequired("center")
	rootCmd.AddCommand(graphCmd)
}
