package config

import (
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName removes characters not allowed in file names on this
// platform. Result is never empty.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym < ' ' || strings.ContainsRune(forbiddenInName, sym) {
			return -1
		}
		return sym
	}, in)
	if out = adjustFileName(out); len(out) == 0 {
		out = badFileName
	}
	return out
}
