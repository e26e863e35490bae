// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cybrota/lazyavl/avl"
	"github.com/cybrota/lazyavl/script"
)

var version = "0.1.0"

// app carries what every subcommand needs once the root pre-run is done.
type app struct {
	config *Config
	log    *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	var rootCmd = &cobra.Command{
		Use:           "lazyavl",
		Version:       version,
		Short:         "AVL tree with lazy deletion, driven by command files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, loadErr := LoadConfig()
			a.config = config

			level := config.Log.Level
			if cmd.Flags().Changed("log-level") {
				level = logLevel
			}
			log, err := newLogger(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			a.log = log
			if loadErr != nil {
				a.log.Warn("failed to load configuration, using defaults", "err", loadErr)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the shell when no subcommand is provided
			return a.shell(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultConfig.Log.Level, "log level (debug, info, warn, error)")

	var cmdRun = &cobra.Command{
		Use:   "run <input> <output>",
		Short: "Execute a command file and write one result per line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			showProgress := a.config.Run.ShowProgress
			if cmd.Flags().Changed("progress") {
				showProgress, _ = cmd.Flags().GetBool("progress")
			}
			var progress io.Writer
			if showProgress {
				progress = cmd.ErrOrStderr()
			}

			stats, err := runScriptFile(cmd.Context(), a.log, args[0], args[1], progress)
			if err != nil {
				return err
			}
			if stats.Errors > 0 {
				a.log.Warn("some commands failed", "errors", stats.Errors, "commands", stats.Commands)
			}
			return nil
		},
	}
	cmdRun.Flags().Bool("progress", false, "show a progress bar on stderr")

	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell on an empty tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.shell(cmd)
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show configuration, creating the default file if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := getConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}
			return displaySettings(cmd.OutOrStdout(), configPath)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print lazyavl usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print lazyavl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(cmdRun, cmdShell, cmdSettings, cmdUsage, cmdVersion)
	return rootCmd
}

// shell runs the interactive shell. Ctrl-C leaves it like exit does.
func (a *app) shell(cmd *cobra.Command) error {
	runner := script.NewRunner(avl.New(), a.log)
	err := runShell(cmd.Context(), runner, cmd.InOrStdin(), cmd.OutOrStdout(), a.config.Shell)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError logs the error that ended the command. It does not use the
// configured logger since that may be the thing that failed to build.
func reportError(w io.Writer, err error) {
	slog.New(slog.NewTextHandler(w, nil)).Error("lazyavl failed", "err", err)
}
