// Package compose builds the text that gets copied: the base/addon payload
// and the translation-request template.
package compose

import (
	"errors"
	"strings"
)

// Delimiter separates the base and addon blocks in a copied payload.
const Delimiter = "\n=\n"

// ErrNothingToCopy means both fields were blank and the copy must not happen.
var ErrNothingToCopy = errors.New("nothing to copy")

// Format trims base and addon and joins them with Delimiter.
func Format(base, addon string) (string, error) {
	base = strings.TrimSpace(base)
	addon = strings.TrimSpace(addon)
	if base == "" && addon == "" {
		return "", ErrNothingToCopy
	}
	return base + Delimiter + addon, nil
}
