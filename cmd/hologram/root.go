package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phanxgames/hologram"
	"github.com/phanxgames/hologram/resources"
)

// newLogger returns a console logger at level. Unknown levels fall back to
// info.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

func installLogger(cmd *cobra.Command, level string) {
	hologram.SetLogger(newLogger(cmd.ErrOrStderr(), level))
}

func buildRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "hologram",
		Short:         "Hologram viewer and asset tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error (default from config or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if logLevel != "" {
			installLogger(cmd, logLevel)
		}
	}

	root.AddCommand(buildRunCmd(&logLevel), buildManifestCmd(), buildProbeCmd())
	return root
}

func buildRunCmd(logLevel *string) *cobra.Command {
	var (
		configPath string
		flags      hologram.Config
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the viewer window",
		Example: "  hologram run --assets ./assets\n" +
			"  hologram run --config hologram.yaml --debug-addr :9090",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg hologram.Config
			if configPath != "" {
				c, err := hologram.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = c
			}
			cfg = mergeFlags(cmd, cfg, flags)
			if *logLevel != "" {
				cfg.LogLevel = *logLevel
			}
			cfg = cfg.WithDefaults()
			installLogger(cmd, cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return hologram.Run(ctx, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "Config file (.yaml, .yml, .json, .toml)")
	f.StringVar(&flags.AssetsDir, "assets", "", "Asset directory (default assets)")
	f.StringVar(&flags.AssetsURL, "assets-url", "", "Load assets over HTTP from this base URL")
	f.StringVar(&flags.Manifest, "manifest", "", "Manifest file (default built-in sources)")
	f.IntVar(&flags.Width, "width", 0, "Window width")
	f.IntVar(&flags.Height, "height", 0, "Window height")
	f.BoolVar(&flags.Debug, "debug", false, "Show the stats overlay and log frame timings")
	f.StringVar(&flags.DebugAddr, "debug-addr", "", "Serve /metrics and /assets on this address")
	f.StringSliceVar(&flags.DebugCORS, "debug-cors", nil, "Origins allowed to call the debug server")
	f.StringVar(&flags.ScreenshotDir, "screenshots", "", "Screenshot directory (default screenshots)")
	f.StringVar(&flags.Script, "script", "", "Run a JSON capture script, then exit")
	return cmd
}

// mergeFlags copies every flag the user set over cfg.
func mergeFlags(cmd *cobra.Command, cfg, flags hologram.Config) hologram.Config {
	set := cmd.Flags().Changed
	if set("assets") {
		cfg.AssetsDir = flags.AssetsDir
	}
	if set("assets-url") {
		cfg.AssetsURL = flags.AssetsURL
	}
	if set("manifest") {
		cfg.Manifest = flags.Manifest
	}
	if set("width") {
		cfg.Width = flags.Width
	}
	if set("height") {
		cfg.Height = flags.Height
	}
	if set("debug") {
		cfg.Debug = flags.Debug
	}
	if set("debug-addr") {
		cfg.DebugAddr = flags.DebugAddr
	}
	if set("debug-cors") {
		cfg.DebugCORS = flags.DebugCORS
	}
	if set("screenshots") {
		cfg.ScreenshotDir = flags.ScreenshotDir
	}
	if set("script") {
		cfg.Script = flags.Script
	}
	return cfg
}

func buildManifestCmd() *cobra.Command {
	manifest := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect asset manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("manifest requires a subcommand: check")
		},
	}

	var assetsDir string
	check := &cobra.Command{
		Use:     "check <file>",
		Short:   "Validate a manifest and list its entries",
		Example: "  hologram manifest check manifest.yaml --assets ./assets",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := resources.LoadManifest(args[0])
			if err != nil {
				return err
			}
			var missing []string
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tPATHS")
			for _, s := range m.Sources() {
				paths := append([]string(nil), s.SelectPaths(true)...)
				paths = dedupe(append(paths, s.SelectPaths(false)...))
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Kind, strings.Join(paths, ", "))
				if assetsDir != "" {
					missing = append(missing, missingFiles(os.DirFS(assetsDir), paths)...)
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d missing file(s): %s", len(missing), strings.Join(missing, ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries ok\n", m.Len())
			return nil
		},
	}
	check.Flags().StringVar(&assetsDir, "assets", "", "Also check that every path exists under this directory")
	manifest.AddCommand(check)
	return manifest
}

func buildProbeCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report whether WebP images can be decoded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			state := "unsupported"
			if resources.WebPSupported(ctx) {
				state = "supported"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "webp: %s\n", state)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "Probe timeout")
	return cmd
}
