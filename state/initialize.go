package state

import (
	"fmt"
	"os"
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// LoadExtraStyle reads stylesheet configured to be appended to generated
// output, if any. Stylesheet is recorded in the debug report.
func (e *LocalEnv) LoadExtraStyle() error {
	if e.Cfg == nil || e.Cfg.Document.StylesheetPath == "" {
		return nil
	}
	path := e.Cfg.Document.StylesheetPath
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	e.ExtraStyle = data
	e.Rpt.Store("extra.css", path)
	return nil
}
