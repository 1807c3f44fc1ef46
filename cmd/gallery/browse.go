package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/platform/observability"
	"finitefield.org/glb-gallery/internal/tui"
)

var browseLogFile string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the gallery in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// stdout belongs to the UI
		logger := zap.NewNop()
		if browseLogFile != "" {
			logger, err = observability.NewLogger(cfg.Observability.LogLevel, observability.WithOutputPaths(browseLogFile))
			if err != nil {
				return fmt.Errorf("initialise logger: %w", err)
			}
		}
		defer func() {
			_ = logger.Sync()
		}()

		ctx := observability.WithLogger(context.Background(), logger)
		rt := bootstrap(ctx, cfg, logger)
		defer rt.Close(logger)

		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		app := tui.NewApp(tui.AppParams{
			State:       rt.state,
			Store:       rt.store,
			Notice:      rt.notice,
			Clipboard:   tui.SystemClipboard(),
			PublicURL:   cfg.PublicURL,
			DownloadDir: wd,
			Logger:      logger,
		})

		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseLogFile, "log-file", "", "write logs to this file while the browser runs")
}
