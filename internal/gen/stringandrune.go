//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"strings"
	"unicode"
)

//
// STRINGS and []RUNE
//

// Snippet - trim a string to at most n runes, adding an ellipsis when something was cut
func Snippet(s string, n int) string {
	rr := []rune(s)
	if len(rr) <= n || n < 1 {
		return s
	}
	return strings.TrimRightFunc(string(rr[:n]), unicode.IsSpace) + "…"
}

// AllDigits - true if every rune in a non-empty string is a number
func AllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
