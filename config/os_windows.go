//go:build windows

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

const forbiddenInName = `<>":/\|?*` + string(os.PathListSeparator)

var reservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

// Explorer cannot handle trailing dots and spaces, device names cannot be
// used with any extension.
func adjustFileName(name string) string {
	name = strings.TrimRight(name, ". ")
	base := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
	if slices.Contains(reservedNames, base) {
		name = "_" + name
	}
	return name
}

// EnableColorOutput checks if colorized output is possible and enables VT100
// sequence processing in Windows console.
func EnableColorOutput(stream *os.File) bool {
	if windows.RtlGetVersion().MajorVersion < 10 || !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
