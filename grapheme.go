package goresolve

import "github.com/rivo/uniseg"

// GraphemeCounter counts user-perceived characters for minLength/maxLength.
// It is consumed as a pure function; implementations must be side-effect free
// and safe for concurrent use.
type GraphemeCounter interface {
	Count(s string) int
}

// unisegCounter segments by Unicode grapheme clusters (UAX #29), so a family
// emoji built from several code points counts as one character.
type unisegCounter struct{}

func (unisegCounter) Count(s string) int { return uniseg.GraphemeClusterCount(s) }

// DefaultGraphemes returns the built-in grapheme counter.
func DefaultGraphemes() GraphemeCounter { return unisegCounter{} }
