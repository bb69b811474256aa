package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skyopshq/skyops/app"
	"github.com/skyopshq/skyops/config"
	"github.com/skyopshq/skyops/infra/logger"
)

var (
	cfgPath string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "skyops",
	Short: "Drone operations matching and conflict engine",
	Long: `skyops loads the pilot, drone and mission rosters and serves the
matching, conflict detection and reassignment API. One-shot subcommands
run the same engine against the CSVs without starting the server.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "override the roster CSV directory")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig applies CLI overrides on top of the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
