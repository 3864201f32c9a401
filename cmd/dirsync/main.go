package main

import (
	"fmt"
	"os"

	"github.com/psarna/dirsync/pkg/config"
	"github.com/psarna/dirsync/pkg/dirsync"

	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	logLevel    string
	maxDepth    int
	raceRetries int
	jobs        int
	retries     int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "dirsync",
		Short: "Make directory entries durable",
		Long: `dirsync flushes directory metadata to stable storage so that files created,
renamed or removed inside a directory survive a crash. Symlinks on the way to
the directory are followed, up to a fixed number of hops.

Example:
  dirsync sync /var/lib/db/wal/000042.log
  dirsync resolve /var/lib/db/current`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: off, info or debug (default from DIRSYNC_LOG_LEVEL)")
	rootCmd.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", dirsync.DefaultMaxDepth, "Maximum symlink hops")
	rootCmd.PersistentFlags().IntVar(&opts.raceRetries, "race-retries", dirsync.DefaultRaceRetries, "Re-reads of a symlink that changes while being read")

	syncCmd := &cobra.Command{
		Use:   "sync FILE...",
		Short: "Flush the directory containing each FILE",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, opts, args)
		},
	}
	syncCmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 1, "Directories synced in parallel")
	syncCmd.Flags().IntVar(&opts.retries, "retries", 1, "Attempts per file when the symlink keeps changing")

	resolveCmd := &cobra.Command{
		Use:   "resolve DIR",
		Short: "Print the directory DIR resolves to after following symlinks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0])
		},
	}

	rootCmd.AddCommand(syncCmd, resolveCmd)
	return rootCmd
}

func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = dirsync.LevelFromEnv()
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	if flags.Changed("race-retries") {
		cfg.RaceRetries = opts.raceRetries
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("retries") {
		cfg.Retry.MaxTries = opts.retries
	}
	return cfg, cfg.Validate()
}

func newSyncer(cmd *cobra.Command, cfg config.Config) *dirsync.Syncer {
	logger := dirsync.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return dirsync.New(append(cfg.Options(), dirsync.WithLogger(logger))...)
}

func runSync(cmd *cobra.Command, opts *options, files []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f == "" {
			return fmt.Errorf("empty file path")
		}
	}

	s := newSyncer(cmd, cfg)
	if err := s.SyncAll(cmd.Context(), files, cfg.Jobs); err != nil {
		return fmt.Errorf("sync failed (%s, errno %d): %w", dirsync.CodeOf(err), int(dirsync.ErrnoOf(err)), err)
	}
	return nil
}

func runResolve(cmd *cobra.Command, opts *options, dir string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	resolved, err := newSyncer(cmd, cfg).Resolve(dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resolved)
	return nil
}
