// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalizer maps a position name to its identity key.
type Normalizer struct {
	FoldCase  bool
	TrimSpace bool
}

// DefaultNormalizer folds case and collapses whitespace.
var DefaultNormalizer = Normalizer{FoldCase: true, TrimSpace: true}

// Key returns the grouping key for a position name. With TrimSpace, leading
// and trailing whitespace is dropped and inner runs collapse to one space.
func (n Normalizer) Key(position string) string {
	if n.TrimSpace {
		position = strings.Join(strings.Fields(position), " ")
	}
	if n.FoldCase {
		// cases.Caser is stateful, so each call gets its own
		position = cases.Fold().String(position)
	}
	return position
}
