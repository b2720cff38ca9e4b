// Package textutil holds the whitespace rules shared by slug, excerpt and
// query normalization.
//
// Post titles and bodies were historically normalized by a JavaScript
// runtime, whose \s class is wider than RE2's. Stored slugs and excerpts
// depend on that wider set, so every normalizer in this module uses it.
package textutil

import "strings"

// SpaceClass is a regexp character class body matching the same code points
// as an ECMAScript \s. Use it inside brackets: "[" + SpaceClass + "]".
const SpaceClass = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// IsSpace reports whether r is whitespace under ECMAScript rules.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// TrimSpace removes leading and trailing whitespace as defined by IsSpace.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
