package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fstyle/common"
	"fstyle/config"
	"fstyle/render"
	"fstyle/state"
	"fstyle/styles"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:         "render",
		Usage:        "Renders form document(s) into CSS stylesheet(s)",
		OnUsageError: usageErrorHandler,
		Action:       render.Run,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "base-only", Aliases: []string{"bo"},
				Usage: fmt.Sprintf("do not produce narrow screen (<= %dpx) overrides", styles.MobileBreakpoint)},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
		},
		ArgsUsage: "SOURCE [DESTINATION]",
		CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to form document(s) to process, following formats are supported:
        path to a file: "[path_to_file]form.yaml" - YAML or JSON form document
        path to a bundle: "[path_to_file]forms.zip" - all *.yaml, *.yml and *.json documents in archive
        path to a directory: "[path_to_directory]directory" - recursively process all documents and bundles under directory

    Known element kinds: %s

DESTINATION:
    absent - current working directory
    "-" - STDOUT
    existing directory - output name is derived from form name or document.output_name_template
    anything else - output file, only when single form document is processed
`, cli.CommandHelpTemplate, strings.Join(common.FieldKindNames(), ", ")),
	}
}

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or actual configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError: usageErrorHandler,
		Action:       outputConfiguration,
		ArgsUsage:    "DESTINATION",
		CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
	}
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	what, data := "actual", []byte(nil)
	if cmd.Bool("default") {
		what = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		env.Log.Info("Outputing configuration", zap.String("state", what), zap.String("file", "STDOUT"))
		_, err = os.Stdout.Write(data)
	} else {
		env.Log.Info("Outputing configuration", zap.String("state", what), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
