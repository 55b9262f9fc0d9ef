package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"fstyle/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates inputs, configuration and results of the run to be put
// into debug archive. Nil *Report is valid and ignores everything, so callers
// do not have to check whether report was requested.
// NOTE: not to be used concurrently!
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close writes the archive.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		err = multierr.Append(err, r.file.Close())
	}()
	return r.finalize()
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers path to the file to be put into archive when report is
// closed, so file content at that moment is used.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}
	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData puts data into archive under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	r.entries[name] = entry{data: bytes.Clone(data), stamp: time.Now()}
}

// StoreCopy reads file content now. Repeated names are versioned with
// timestamps, so it is safe to put the same file into report multiple times.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	e := entry{original: path, actual: abs, stamp: time.Now(), data: data}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
	return nil
}

// contents returns entry content and its modification time. Absent stored
// files are reported with nil reader.
func (e entry) contents() (io.ReadCloser, time.Time, error) {
	if e.data != nil {
		return io.NopCloser(bytes.NewReader(e.data)), e.stamp, nil
	}
	info, err := os.Stat(e.actual)
	if err != nil || !info.Mode().IsRegular() {
		return nil, time.Time{}, nil
	}
	f, err := os.Open(e.actual)
	if err != nil {
		return nil, time.Time{}, err
	}
	return f, info.ModTime(), nil
}

// finalize writes MANIFEST followed by all stored entries in natural order
// of their names.
func (r *Report) finalize() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() {
		err = multierr.Append(err, arc.Close())
	}()

	now := time.Now()
	names := slices.Collect(maps.Keys(r.entries))
	sort.Sort(natural.StringSlice(names))

	manifest := new(bytes.Buffer)
	for _, name := range names {
		e := r.entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(manifest, "%s\t%s\t%s : %s\n", stamp.UTC().Format(time.UnixDate), name, e.original, e.actual)
	}
	if err := saveFile(arc, "MANIFEST", now, manifest); err != nil {
		return err
	}

	for _, name := range names {
		rc, stamp, err := r.entries[name].contents()
		if err != nil {
			return err
		}
		if rc == nil {
			continue
		}
		err = saveFile(arc, name, stamp, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return fmt.Errorf("unable to add '%s' to report: %w", name, err)
	}
	_, err = io.Copy(w, src)
	return err
}
