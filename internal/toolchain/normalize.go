package toolchain

import (
	"strings"
	"unicode"
)

// Normalize chops a trailing run of backslashes and whitespace off a
// directory read from the store.
func Normalize(raw string) string {
	return strings.TrimRightFunc(raw, func(r rune) bool {
		return r == '\\' || unicode.IsSpace(r)
	})
}
