package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"path-planner/internal/config"
	"path-planner/internal/logging"
	"path-planner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the route planning HTTP server",
	Long: `Start the HTTP API. The graph file from the config is loaded on startup
when it exists; otherwise POST a graph to /graph.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
		srv := server.New(cfg, logger)

		if cfg.Graph.File != "" {
			err := srv.LoadGraphFile(cfg.Graph.File, "file")
			switch {
			case err == nil:
			case errors.Is(err, os.ErrNotExist):
				logger.Info("no graph file found, waiting for POST /graph", "file", cfg.Graph.File)
			default:
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx)
	},
}
