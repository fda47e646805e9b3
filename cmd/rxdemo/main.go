// Command rxdemo renders a sample frame offscreen and saves it as PNG.
//
//	rxdemo --output demo.png --scale 2
//	rxdemo --backend cairo
//	rxdemo backends
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/platform"
)

var (
	width   int
	height  int
	scale   float64
	output  string
	backend string
	fonts   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rxdemo",
	Short: "Render a sample frame with rx and save it as PNG",
	Long: `rxdemo draws rectangles, lines and styled text through the rx render
context of the selected engine and writes the offscreen result to a PNG file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			rx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []rx.Option{rx.WithScaleFactor(scale), rx.WithSystemFonts(fonts)}
		if backend != "" {
			opts = append(opts, rx.WithBackend(backend))
		}
		name, err := render(output, width, height, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: saved %s (%dx%d)\n", name, output, width, height)
		return nil
	},
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the engines available on this system",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range platform.Backends() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&width, "width", 800, "image width in pixels")
	flags.IntVar(&height, "height", 600, "image height in pixels")
	flags.Float64Var(&scale, "scale", 1, "device pixels per point")
	flags.StringVarP(&output, "output", "o", "demo.png", "output file")
	flags.StringVarP(&backend, "backend", "b", "", "engine name (default: highest priority)")
	flags.BoolVar(&fonts, "system-fonts", true, "scan system font directories")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")

	rootCmd.AddCommand(backendsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
