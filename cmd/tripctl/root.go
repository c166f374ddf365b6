package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripcanvas/internal/config"
	"github.com/pkordes/tripcanvas/internal/service"
	"github.com/pkordes/tripcanvas/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "tripctl",
	Short:         "TripCanvas trip planner tool",
	Long:          "tripctl drives the TripCanvas planner from the terminal: an interactive shell, schema migrations and exports.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (overrides CONFIG_FILE)")
}

// loadConfig resolves configuration and builds a JSON logger on stderr at the
// configured level, keeping stdout free for command output.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	loader := config.NewLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader.SetFile(path)
	}
	cfg, err := loader.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	return cfg, logger, nil
}

// openPlanner opens the configured store and loads a PlannerService over it.
// The returned func closes the store.
func openPlanner(ctx context.Context, cmd *cobra.Command) (*service.PlannerService, func(), error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewPlannerService(service.WithStore(st.Trips), service.WithLogger(logger))
	if err := svc.Load(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}
	return svc, st.Close, nil
}
