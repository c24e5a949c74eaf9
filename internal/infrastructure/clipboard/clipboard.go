// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// WriteFunc is exposed for testing.
// It allows replacing the system clipboard.
var WriteFunc = clipboard.WriteAll

// ErrEmpty is returned when there is nothing to copy.
var ErrEmpty = errors.New("nothing to copy")

// Copy writes text to the clipboard. Line breaks are kept so copied code runs as-is.
func Copy(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	return WriteFunc(text)
}
