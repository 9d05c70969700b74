package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/observability"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr      string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the profile API and the websocket gesture surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("static") {
				cfg.Server.StaticDir = staticDir
			}

			logger := observability.GetLogger()

			if dir := filepath.Dir(cfg.Store.Path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create data directory: %w", err)
				}
			}
			st, err := store.New(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("failed to initialize store: %w", err)
			}
			defer st.Close()

			a := app.New(app.ConfigFrom(cfg, st, logger))
			if err := a.LoadProfiles(); err != nil {
				return err
			}

			webDir := cfg.Server.StaticDir
			if webDir == "" {
				webDir = findWebDir()
			}
			if webDir != "" {
				logger.Info("serving static files", zap.String("dir", webDir))
			}

			srv := server.New(server.Config{
				StaticDir: webDir,
				Store:     st,
				App:       a,
				Logger:    logger,
			})
			return srv.Run(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory of static files (overrides server.static_dir)")
	return cmd
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
