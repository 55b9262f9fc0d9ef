package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fstyle/config"
	"fstyle/misc"
	"fstyle/state"
)

// initializeAppContext runs after command line has been parsed and before
// any subcommand: configuration, debug report and logging.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	configFile := cmd.String("config")

	cfg, err := config.LoadConfiguration(configFile)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	env.Cfg = cfg

	if cmd.Bool("debug") {
		if env.Rpt, err = prepareReport(cfg, configFile); err != nil {
			return ctx, err
		}
	}

	if env.Log, err = cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// prepareReport creates debug report and puts processed configuration into
// it when external configuration was provided.
func prepareReport(cfg *config.Config, configFile string) (*config.Report, error) {
	rpt, err := cfg.Reporting.Prepare()
	if err != nil {
		return nil, fmt.Errorf("unable to prepare debug report: %w", err)
	}
	if len(configFile) > 0 {
		if data, err := config.Dump(cfg); err == nil {
			rpt.StoreData("config/"+filepath.Base(configFile), data)
		}
	}
	return rpt, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	// log is synced and may go to the report, errors from now on go to stderr
	var err error
	if er := env.Rpt.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
	}
	if env.Cfg != nil {
		err = multierr.Append(err, removeEmptyPanicLog(env.Cfg.Logging.FileLogger.Destination))
	}
	return err
}

// removeEmptyPanicLog cleans after crash output redirection set by logger
// preparation when nothing crashed.
func removeEmptyPanicLog(logFile string) error {
	if len(logFile) == 0 {
		return nil
	}
	debug.SetCrashOutput(nil, debug.CrashOptions{})

	fname := filepath.Join(filepath.Dir(logFile), misc.GetAppName()+"-panic.log")
	if fi, err := os.Stat(fname); err != nil || fi.Size() != 0 {
		return nil
	}
	if err := os.Remove(fname); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, err)
	}
	return nil
}

// Subcommands return regular errors, cli.Exit() is not used. When logger is
// available the error is logged once here, otherwise main prints it.
var errWasHandled bool

// called before app context is destroyed, so log is still open
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}
