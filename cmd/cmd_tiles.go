package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
)

var tilesOptions struct {
	from, to         string
	minZoom, maxZoom int
	out              string
	quiet            bool
}

var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "List the map tiles covering a bounding box",
	Long: `
tiles prints one z/x/y line per slippy-map tile covering the box between
--from and --to, for every zoom level in [--min-zoom, --max-zoom]. The list
is meant to feed an offline tile downloader.
`,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := parseCoordinate(tilesOptions.from)
		if err != nil {
			return err
		}
		b, err := parseCoordinate(tilesOptions.to)
		if err != nil {
			return err
		}
		if tilesOptions.minZoom < 0 || tilesOptions.maxZoom > 22 || tilesOptions.minZoom > tilesOptions.maxZoom {
			return fmt.Errorf("zoom range %d..%d must lie within 0..22", tilesOptions.minZoom, tilesOptions.maxZoom)
		}

		var w io.Writer = os.Stdout
		if tilesOptions.out != "" && tilesOptions.out != "-" {
			f, err := os.Create(tilesOptions.out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", tilesOptions.out, err)
			}
			defer f.Close()
			w = f
		}

		var bar *progressbar.ProgressBar
		if !tilesOptions.quiet {
			bar = progressbar.NewOptions(tilesOptions.maxZoom-tilesOptions.minZoom+1,
				progressbar.OptionSetDescription("Listing tiles"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		n, err := writeTiles(w, a, b, tilesOptions.minZoom, tilesOptions.maxZoom, func() {
			if bar != nil {
				bar.Add(1)
			}
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d tiles\n", n)
		return nil
	},
}

// writeTiles writes the tile list zoom by zoom and calls step after each
// level.
func writeTiles(w io.Writer, a, b geo.Coordinate, minZoom, maxZoom int, step func()) (int, error) {
	bw := bufio.NewWriter(w)
	total := 0
	for z := minZoom; z <= maxZoom; z++ {
		for _, t := range geo.TileRange(a, b, z) {
			if _, err := fmt.Fprintln(bw, t.String()); err != nil {
				return total, err
			}
			total++
		}
		if step != nil {
			step()
		}
	}
	return total, bw.Flush()
}

func init() {
	tilesCmd.Flags().StringVar(&tilesOptions.from, "from", "", "one corner as lat,lng")
	tilesCmd.Flags().StringVar(&tilesOptions.to, "to", "", "opposite corner as lat,lng")
	tilesCmd.Flags().IntVar(&tilesOptions.minZoom, "min-zoom", 10, "lowest zoom level")
	tilesCmd.Flags().IntVar(&tilesOptions.maxZoom, "max-zoom", 16, "highest zoom level")
	tilesCmd.Flags().StringVarP(&tilesOptions.out, "out", "o", "-", "output file, - for stdout")
	tilesCmd.Flags().BoolVarP(&tilesOptions.quiet, "quiet", "q", false, "hide the progress bar")
	tilesCmd.MarkFlagRequired("from")
	tilesCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(tilesCmd)
}
