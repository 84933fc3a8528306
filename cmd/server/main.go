package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swaplink/bridge-widget/internal/ratelimit"
	"github.com/swaplink/bridge-widget/internal/server"
	"github.com/swaplink/bridge-widget/internal/version"
	"github.com/swaplink/bridge-widget/internal/widget"
)

var rootCmd = &cobra.Command{
	Use:     "widget-server",
	Short:   "SwapLink bridge widget edge server",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &server.Config{
			HTTP: server.HTTPConfig{
				Addr:          viper.GetString("bind"),
				CertFile:      viper.GetString("cert"),
				KeyFile:       viper.GetString("key"),
				SlowThreshold: viper.GetDuration("slow_threshold"),
			},
			Assets: server.AssetsConfig{
				Dir: viper.GetString("assets_dir"),
			},
			RateLimit: server.RateLimitConfig{
				Limit:  viper.GetInt("rate_limit"),
				Window: viper.GetDuration("rate_window"),
			},
			Widget: server.WidgetConfig{
				DefaultInputChain: viper.GetInt64("default_chain"),
			},
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		cmd.SilenceUsage = true

		s, err := server.New(cfg)
		if err != nil {
			return err
		}

		defer slog.Info("Bye!")
		return s.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("bind", "b", server.DefaultAddr, "Address to bind the server")
	rootCmd.Flags().String("cert", "", "Path to the TLS certificate file")
	rootCmd.Flags().String("key", "", "Path to the TLS key file")
	rootCmd.Flags().StringP("assets", "d", "./dist", "Directory with the pre-built web bundle")
	rootCmd.Flags().Int("rate-limit", ratelimit.DefaultLimit, "Requests allowed per client per window")
	rootCmd.Flags().Duration("rate-window", ratelimit.DefaultWindow, "Rate limit window duration")
	rootCmd.Flags().Int64("chain", widget.ChainEthereum, "Default input chain id for the widget config")
	rootCmd.Flags().Duration("slow-threshold", time.Second, "Duration above which a request is logged as slow")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a config file")
}

func main() {
	// optional .env for local runs
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.SetEnvPrefix("widget")
	viper.AutomaticEnv()

	viper.BindPFlag("bind", cmd.Flags().Lookup("bind"))
	viper.BindPFlag("cert", cmd.Flags().Lookup("cert"))
	viper.BindPFlag("key", cmd.Flags().Lookup("key"))
	viper.BindPFlag("assets_dir", cmd.Flags().Lookup("assets"))
	viper.BindPFlag("rate_limit", cmd.Flags().Lookup("rate-limit"))
	viper.BindPFlag("rate_window", cmd.Flags().Lookup("rate-window"))
	viper.BindPFlag("default_chain", cmd.Flags().Lookup("chain"))
	viper.BindPFlag("slow_threshold", cmd.Flags().Lookup("slow-threshold"))
	return nil
}
