package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/logger"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/routing"
)

var routeOptions struct {
	from, to  string
	direct    bool
	graphFile string
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Plan one route and print it as JSON",
	Example: `  navigator route --from 45.5017,-73.5673 --to 45.5088,-73.5540
  navigator route --from 0,0 --to 0,1 --direct`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		origin, err := parseCoordinate(routeOptions.from)
		if err != nil {
			return err
		}
		destination, err := parseCoordinate(routeOptions.to)
		if err != nil {
			return err
		}

		service := routing.NewService(settings.Routing, logger.L())

		var res routing.RouteResult
		if routeOptions.direct {
			res = service.CreateDirectPath(origin, destination)
		} else {
			var g *graphs.Graph
			path := routeOptions.graphFile
			if path == "" {
				path = settings.GraphFile
			}
			if path != "" {
				if g, err = graphs.LoadGraphFromFile(path); err != nil {
					return err
				}
			}
			res = service.CalculateRoute(cmd.Context(), origin, destination, g)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("no route: %s", res.Error)
		}
		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeOptions.from, "from", "", "origin as lat,lng")
	routeCmd.Flags().StringVar(&routeOptions.to, "to", "", "destination as lat,lng")
	routeCmd.Flags().BoolVar(&routeOptions.direct, "direct", false, "return the straight segment instead of searching")
	routeCmd.Flags().StringVar(&routeOptions.graphFile, "graph", "", "saved graph (.gob or .json) to search instead of a generated grid")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(routeCmd)
}
