// Command pbrviewer displays one model under image-based and point-light
// PBR shading.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pbr-viewer/internal/config"
	"pbr-viewer/internal/logging"
	"pbr-viewer/renderer"
)

// version is set at build time.
var version = "dev"

type flags struct {
	configPath string
	model      string
	hdr        string
	logLevel   string
	shaderDir  string
	hotReload  bool
}

// resolve loads the config file and layers the changed flags over it.
func (f *flags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	var o config.Overrides
	changed := cmd.Flags().Changed
	if changed("model") {
		o.Model = &f.model
	}
	if changed("hdr") {
		o.HDR = &f.hdr
	}
	if changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if changed("shader-dir") {
		o.ShaderDir = &f.shaderDir
	}
	if changed("hot-reload") {
		o.HotReload = &f.hotReload
	}
	if err := o.Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	logs, err := logging.New(cfg.LoggingConfig())
	if err != nil {
		return err
	}
	defer logs.Close()

	log := logs.Component("main")
	log.Info().Str("version", version).Str("model", cfg.Assets.Model).
		Str("environment", cfg.Assets.Environment).Msg("starting")

	engine, err := renderer.NewRenderEngine(cfg, logs)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	if err := engine.Run(ctx); err != nil {
		log.Error().Err(err).Msg("frame loop failed")
		return err
	}
	return nil
}

func main() {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:           "pbrviewer",
		Short:         "Real-time PBR model viewer",
		Long:          "Loads an OBJ or glTF model and an equirectangular HDR environment, then renders with IBL, omni shadows, parallax mapping, bloom and tonemapping.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default: pbrviewer.yaml in . or ./configs)")
	pf.StringVar(&f.model, "model", "", "model file (.obj, .gltf, .glb)")
	pf.StringVar(&f.hdr, "hdr", "", "equirectangular .hdr environment")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&f.shaderDir, "shader-dir", "", "directory of shader overrides")
	pf.BoolVar(&f.hotReload, "hot-reload", false, "rebuild shaders when files in --shader-dir change")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "pbrviewer", version)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}

	rootCmd.AddCommand(versionCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
