package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"learnify/internal/bootstrap"
	"learnify/internal/platform/config"
	"learnify/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "learnify",
		Short:         "Browse, enroll in and track online courses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDataDir(), "directory holding learnify.yaml and local storage")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newCourseCmd(flags))
	root.AddCommand(newEnrollCmd(flags))
	root.AddCommand(newProgressCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newActivityCmd(flags))
	root.AddCommand(newResumeCmd(flags))
	root.AddCommand(newPrefsCmd(flags))
	return root
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "learnify")
	}
	return "."
}

// loadApp builds the application. The TUI logs to a file inside the data dir
// so output does not corrupt the screen; the CLI logs warnings to stderr.
func loadApp(flags *globalFlags, tui bool) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return nil, err
	}
	level, output := "warn", "stderr"
	if flags.verbose {
		level = "debug"
	}
	if tui {
		level, output = cfg.Log.Level, filepath.Join(flags.dataDir, "learnify.log")
	}
	log, err := logger.New(cfg.Log.Mode, level, output)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, log)
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(flags *globalFlags, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(flags, false)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the learnify terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			app.Prefetch(cmd.Context())
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}
