package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/crowdmorph/internal/config"
)

var (
	configFile string
	preset     string
	rosterFile string
	count      int
	seed       int64
	logLevel   string

	theme string

	snapshot snapshotOptions
	sample   sampleOptions
	trace    traceOptions
)

type snapshotOptions struct {
	frames, cycleEvery int
	width, height      int
	zoom, rotate       float64
	mode, out          string
}

type sampleOptions struct {
	width, height int
	out           string
}

type traceOptions struct {
	frames, cycleEvery int
	width, height      int
}

// main registers the commands and opens the window when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "crowdmorph",
		Short:        "labeled particles morphing between a logo and two texts",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&rosterFile, "roster", "", "entity list (yaml or json); demo entities when empty")
	pf.IntVar(&count, "count", 0, "number of demo entities (default from config)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "render the crowd in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "roster", "color theme")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate headlessly and write the last frame as svg",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshot.frames, "frames", 120, "frames to simulate")
	snapshotCmd.Flags().IntVar(&snapshot.cycleEvery, "cycle-every", 0, "advance the formation every n frames (0 disables)")
	snapshotCmd.Flags().StringVar(&snapshot.mode, "mode", "logo", "starting formation: logo, text1 or text2")
	snapshotCmd.Flags().IntVar(&snapshot.width, "width", 0, "canvas width (default from config)")
	snapshotCmd.Flags().IntVar(&snapshot.height, "height", 0, "canvas height (default from config)")
	snapshotCmd.Flags().Float64Var(&snapshot.zoom, "zoom", 1, "zoom factor")
	snapshotCmd.Flags().Float64Var(&snapshot.rotate, "rotate", 0, "rotation in degrees")
	snapshotCmd.Flags().StringVarP(&snapshot.out, "out", "o", "crowdmorph.svg", "output file")

	sampleCmd := &cobra.Command{
		Use:   "sample [logo|text1|text2|text]",
		Short: "sample one shape and preview its point cloud",
		Args:  cobra.ExactArgs(1),
		RunE:  runSample,
	}
	sampleCmd.Flags().IntVar(&sample.width, "width", 160, "canvas width")
	sampleCmd.Flags().IntVar(&sample.height, "height", 80, "canvas height")
	sampleCmd.Flags().StringVarP(&sample.out, "out", "o", "", "write the points as svg instead of printing")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot mean distance to target over frames",
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&trace.frames, "frames", 600, "frames to simulate")
	traceCmd.Flags().IntVar(&trace.cycleEvery, "cycle-every", 150, "advance the formation every n frames (0 disables)")
	traceCmd.Flags().IntVar(&trace.width, "width", 0, "canvas width (default from config)")
	traceCmd.Flags().IntVar(&trace.height, "height", 0, "canvas height (default from config)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("available presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  - %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, snapshotCmd, sampleCmd, traceCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
