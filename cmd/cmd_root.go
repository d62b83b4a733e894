package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/config"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "navigator",
	Short: "offline route planning over generated grids or saved graphs",
	Long: `
navigator plans routes between two coordinates without any online service.
It lays a grid lattice over the area between the points, or reads a saved
graph, and searches it with A*.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if envFile != "" {
			config.LoadDotEnv(envFile)
		} else {
			config.LoadDotEnv()
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		settings = cfg
		logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

// settings is filled before any subcommand runs.
var settings *config.Config

var Version = "dev"

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
}

func Execute(version string) {
	Version = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseCoordinate reads "lat,lng".
func parseCoordinate(s string) (geo.Coordinate, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Coordinate{}, fmt.Errorf("coordinate %q: want lat,lng", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("coordinate %q: latitude: %w", s, err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("coordinate %q: longitude: %w", s, err)
	}
	c := geo.Coordinate{Lat: a, Lng: b}
	if !c.Valid() {
		return geo.Coordinate{}, fmt.Errorf("coordinate %q: out of range", s)
	}
	return c, nil
}
