package commands

import (
	"context"
	"fmt"
	"henke-client/internal/components/telemetry"
	"henke-client/internal/henke"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	plotPath   string
	outPath    string
	wavelength bool
)

var (
	client    *henke.Client
	otelState telemetry.Otel
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a henke.json5 config, by default it is searched for from the working directory upward.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log requests and responses.")
	flags.StringVar(&plotPath, "plot", "", "Also render the result to a chart (.png, .svg or .pdf).")
	flags.StringVar(&outPath, "out", "", "Also write the result to a sqlite (.db) or parquet (.parquet) file.")
	flags.BoolVar(&wavelength, "wavelength", false, "Show energy scans against wavelength (nm) instead of energy (eV).")
}

var rootCmd = &cobra.Command{
	Use:          "henke-cli",
	Short:        "henke-cli queries the CXRO X-ray interactions with matter service.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		otelState, err = telemetry.SetupOtel(cmd.Context(), "henke-cli", cfg.Otlp)
		if err != nil {
			return fmt.Errorf("failed to setup telemetry: %w", err)
		}

		var tel telemetry.API = telemetry.SlogAPI{}
		if otelState.MeterProvider != nil {
			tel, err = telemetry.NewOtelAPI(otelState.MeterProvider.Meter("henke-cli"), tel)
			if err != nil {
				return fmt.Errorf("failed to setup metrics: %w", err)
			}
		}

		client, err = henke.NewClient(henke.ClientOptions{
			BaseUrl:           cfg.BaseUrl,
			Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Telemetry:         tel,
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		return nil
	},
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := otelState.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
