//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

//
// CONTRACTIONS
//

var (
	// apostrophe-bearing words incl. leading ('tis) and trailing (gods') marks
	aposword = regexp.MustCompile(`'?\p{L}+(?:'\p{L}+)*'?`)

	// whole-word expansions; checked before the suffix rules
	Contractions = map[string]string{
		"ain't":   "is not",
		"can't":   "cannot",
		"e'en":    "even",
		"e'er":    "ever",
		"'gainst": "against",
		"he's":    "he is",
		"how's":   "how is",
		"it's":    "it is",
		"let's":   "let us",
		"ne'er":   "never",
		"o'er":    "over",
		"shan't":  "shall not",
		"she's":   "she is",
		"that's":  "that is",
		"there's": "there is",
		"'tis":    "it is",
		"'twas":   "it was",
		"'twere":  "it were",
		"what's":  "what is",
		"where's": "where is",
		"who's":   "who is",
		"won't":   "will not",
	}

	// suffix expansions; order matters: "n't" must be tried before "'t"
	suffixes = []struct {
		suff string
		repl string
	}{
		{"n't", " not"},
		{"'re", " are"},
		{"'ve", " have"},
		{"'ll", " will"},
		{"'m", " am"},
		{"'d", " would"},
		{"'st", ""}, // "know'st"
		{"'s", ""},  // possessive
	}

	apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'", "`", "'")
)

// ExpandContractions - "Thou can't" --> "Thou cannot"; possessive 's is dropped
func ExpandContractions(s string) string {
	s = apostrophes.Replace(s)
	if !strings.Contains(s, "'") {
		return s
	}
	return aposword.ReplaceAllStringFunc(s, expandword)
}

func expandword(w string) string {
	if !strings.Contains(w, "'") {
		return w
	}

	lw := strings.ToLower(w)

	if x, ok := Contractions[lw]; ok {
		return matchcase(w, x)
	}

	// plural possessive: "gods'" --> "gods"; a stray leading mark is just punctuation
	trimmed := strings.Trim(lw, "'")
	if x, ok := Contractions[trimmed]; ok {
		return matchcase(w, x)
	}

	for _, sf := range suffixes {
		if strings.HasSuffix(trimmed, sf.suff) && len(trimmed) > len(sf.suff) {
			stem := strings.Trim(w, "'")
			stem = stem[:len(stem)-len(sf.suff)]
			return stem + sf.repl
		}
	}

	return strings.Trim(w, "'")
}

// matchcase - carry the capitalization of the first letter over to the expansion
func matchcase(orig string, repl string) string {
	o := strings.TrimLeft(orig, "'")
	r, _ := utf8.DecodeRuneInString(o)
	if !unicode.IsUpper(r) {
		return repl
	}
	x, sz := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(x)) + repl[sz:]
}
