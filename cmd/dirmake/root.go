package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirmake/pkg/dirmake"
	"github.com/arthur-debert/dirmake/pkg/dirmake/config"
	"github.com/arthur-debert/dirmake/pkg/dirmake/mode"
)

func newRootCommand() *cobra.Command {
	var (
		parents    bool
		verbose    bool
		dryRun     bool
		sortBatch  bool
		modeExpr   string
		logLevel   string
		configPath string
	)
	var modeSet *mode.Set

	cmd := &cobra.Command{
		Use:   "dirmake [flags] directory...",
		Short: "Create directories, with optional parents and symbolic modes",
		Long: `dirmake creates one or more directories. With --parents missing
ancestor directories are created as needed, with --verbose every newly
created directory is reported, and with --mode a symbolic permission
expression (e.g. u=rwx,g=rx,o=r or plain rwx) is applied to each target.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("parents") {
				parents = cfg.Parents
			}
			if !cmd.Flags().Changed("verbose") {
				verbose = cfg.Verbose
			}
			if !cmd.Flags().Changed("mode") && cfg.Mode != "" {
				modeExpr = cfg.Mode
			}
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
				logLevel = cfg.LogLevel
			}

			// The mode expression is validated before any directory is
			// touched; a bad expression is a usage-level error.
			if modeExpr != "" {
				modeSet, err = mode.Parse(modeExpr)
				if err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := dirmake.LogLevelFromString(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			logger := dirmake.NewLogger(cmd.ErrOrStderr(), level)

			return dirmake.Run(dirmake.Options{
				Parents: parents,
				Verbose: verbose,
				DryRun:  dryRun,
				Sort:    sortBatch,
				Mode:    modeSet,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
				Logger:  &logger,
			}, args)
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "no error if existing, make parent directories as needed")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a message for each created directory")
	cmd.Flags().StringVarP(&modeExpr, "mode", "m", "", "set directory mode from a symbolic expression (e.g. u=rwx,g=rx,o=r)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the directories that would be created without creating them")
	cmd.Flags().BoolVar(&sortBatch, "sort", false, "process directories requested together ancestor-first instead of in command-line order")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/dirmake/config.yaml)")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of dirmake`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dirmake version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		// Per-path failures were already reported on stderr.
		if !errors.Is(err, dirmake.ErrNotAllCreated) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
