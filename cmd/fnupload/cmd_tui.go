package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DailyInvestors/Network-Repairs/internal/logging"
	"github.com/DailyInvestors/Network-Repairs/internal/tui"
)

func newTUICmd(opts *cliOptions) *cobra.Command {
	var (
		dir     string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Pick a file interactively and upload it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}

			logger, err := tuiLogger(opts.cfg.Logging.Level, logFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			component := opts.newComponent(logger)
			defer component.Close()

			return tui.Run(cmd.Context(), component, dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to start browsing in (default: current directory)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (default: logging off)")
	return cmd
}

// tuiLogger returns the logger for the interactive mode. The program owns the
// terminal, so logs go to logFile or nowhere.
func tuiLogger(level, logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewNop(), nil
	}
	return logging.NewWithOutput(level, logFile)
}
