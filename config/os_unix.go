//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const forbiddenInName = string(os.PathSeparator) + string(os.PathListSeparator)

// no hidden output files
func adjustFileName(name string) string {
	return strings.TrimLeft(name, ".")
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
