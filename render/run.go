// Package render implements render command: form documents in, stylesheets
// out.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fstyle/archive"
	"fstyle/config"
	"fstyle/css"
	"fstyle/forms"
	"fstyle/state"
)

// Stdout is destination name requesting output to STDOUT.
const Stdout = "-"

var formExtensions = []string{".yaml", ".yml", ".json"}

const bundleExtension = ".zip"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	} else if dst != Stdout {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.BaseOnly, env.Overwrite = cmd.Bool("base-only"), cmd.Bool("overwrite")

	if err := env.LoadExtraStyle(); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Bool("breakpoint", env.Breakpoint()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, env, log)
}

// process renders every form found at src independently of CLI framework.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	sources, err := collect(src)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		log.Warn("Nothing to process", zap.String("source", src))
		return nil
	}
	if (len(sources) > 1 || isBundle(sources[0])) && dst != Stdout && !isDir(dst) {
		return fmt.Errorf("destination must be a directory when rendering several forms (%s)", dst)
	}

	extra := extraStylesheet(env, log)

	var (
		errs  error
		total int
	)
	renderOne := func(origin string, load func() (*forms.Form, error)) {
		total++
		if err := processForm(total, origin, load, dst, extra, env, log); err != nil {
			log.Error("Unable to process form", zap.String("file", origin), zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}

	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if !isBundle(path) {
			renderOne(path, func() (*forms.Form, error) {
				f, err := forms.Load(path)
				if err == nil {
					_ = env.Rpt.StoreCopy("forms/"+filepath.Base(path), path)
				}
				return f, err
			})
			continue
		}
		_ = env.Rpt.StoreCopy("forms/"+filepath.Base(path), path)
		err := archive.Walk(path, isForm, func(bundle, name string, data []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			renderOne(bundle+"/"+name, func() (*forms.Form, error) {
				f, err := forms.Parse(data, strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
				if err != nil {
					return nil, fmt.Errorf("unable to load form '%s' from '%s': %w", name, bundle, err)
				}
				return f, nil
			})
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return multierr.Append(errs, err)
			}
			log.Error("Unable to process bundle", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("bundle '%s': %w", path, err))
		}
	}
	if errs != nil {
		return fmt.Errorf("%d of %d forms failed: %w", len(multierr.Errors(errs)), max(total, len(multierr.Errors(errs))), errs)
	}
	return nil
}

func isForm(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range formExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func isBundle(name string) bool {
	return strings.EqualFold(filepath.Ext(name), bundleExtension)
}

// collect returns form documents and bundles under src in natural order.
// Single file is taken whatever its extension.
func collect(src string) ([]string, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("input source was not found: %w", err)
	}
	if fi.Mode().IsRegular() {
		return []string{src}, nil
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("unexpected path mode for (%s)", src)
	}

	var found []string
	err = filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && (isForm(path) || isBundle(path)) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to walk input directory: %w", err)
	}
	sort.Sort(natural.StringSlice(found))
	return found, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// extraStylesheet parses configured stylesheet, unsupported constructs are
// reported and dropped.
func extraStylesheet(env *state.LocalEnv, log *zap.Logger) *css.Stylesheet {
	if len(env.ExtraStyle) == 0 {
		return nil
	}
	sheet := css.NewParser(log).Parse(env.ExtraStyle, env.Cfg.Document.StylesheetPath)
	for _, w := range sheet.Warnings {
		log.Warn("Extra stylesheet", zap.String("problem", w))
	}
	return sheet
}

func processForm(index int, origin string, load func() (*forms.Form, error), dst string, extra *css.Stylesheet, env *state.LocalEnv, log *zap.Logger) error {
	f, err := load()
	if err != nil {
		return err
	}

	styles := env.Cfg.Document.Styles
	opts := forms.Options{
		Breakpoint:  env.Breakpoint(),
		Transition:  styles.PlaceholderTransition,
		Defaults:    styles.Defaults,
		ClassPrefix: env.Cfg.Document.ClassPrefix,
		Log:         log,
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("trees/%d-%s.txt", index, config.CleanFileName(f.Name)), []byte(forms.Dump(f, opts)))
	}
	sheet, err := forms.Stylesheet(f, opts)
	if err != nil {
		return err
	}
	sheet.Append(extra)

	if dst == Stdout {
		_, err = sheet.WriteTo(os.Stdout)
		return err
	}

	out := dst
	if isDir(dst) {
		out = buildOutputPath(f, origin, dst, env, log)
	}
	if err := write(out, sheet, env.Overwrite); err != nil {
		return err
	}
	log.Info("Stylesheet written", zap.String("form", f.Name), zap.String("file", out))
	_ = env.Rpt.StoreCopy("out/"+filepath.Base(out), out)
	return nil
}

func write(path string, w io.WriterTo, overwrite bool) (err error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("output file already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}
