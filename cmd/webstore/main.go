package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"webstore/internal/config"
	"webstore/internal/logging"
	"webstore/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "webstore: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "webstore",
		Short:         "Serve a directory tree over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.GetDefaultConfigPath()+")")
	cmd.PersistentFlags().StringP("listen", "l", "", "listen address, e.g. 0.0.0.0:5000")
	cmd.PersistentFlags().StringP("root", "r", "", "storage root directory")
	cmd.PersistentFlags().String("log-level", "", "log level: DEBUG / INFO / WARN / ERROR")
	cmd.PersistentFlags().String("log-format", "", "log format: console / json")

	cmd.AddCommand(newConfigCmd(&configPath))

	return cmd
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath, cmd.Flags())
			if err != nil {
				return err
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(cfg); err != nil {
				return err
			}

			return encoder.Close()
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logging.Initialize(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	logger := logging.GetLogger("main")

	gin.SetMode(cfg.Server.Mode)

	store, err := config.CreateStore(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	srv, err := server.New(cfg.Server, store)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	logger.Info().
		Str("listen", cfg.Server.Listen).
		Str("storage", cfg.Storage.Type).
		Str("root", store.Root()).
		Msg("webstore starting")

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info().Msg("webstore stopped")

	return nil
}
