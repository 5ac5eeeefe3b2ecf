//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

//
// LEMMATIZING
//

// Lemmatizer - map a lowercase surface form to its dictionary root; Lemma(Lemma(w)) must equal Lemma(w)
type Lemmatizer interface {
	Lemma(w string) string
}

const (
	maxlemmapasses = 6
)

// RuleLemmatizer - an irregular-form table in front of suffix rules; rules are applied until nothing changes
type RuleLemmatizer struct {
	forms map[string]string
}

// NewRuleLemmatizer - the built-in table plus any extra "form<TAB>lemma" pairs
func NewRuleLemmatizer(extra map[string]string) *RuleLemmatizer {
	forms := make(map[string]string, len(IrregularForms)+len(extra))
	for k, v := range IrregularForms {
		forms[k] = v
	}
	for k, v := range extra {
		forms[strings.ToLower(k)] = strings.ToLower(v)
	}

	rl := &RuleLemmatizer{forms: forms}

	// every lemma in the table must itself be a fixed point
	for _, v := range forms {
		if _, ok := forms[v]; !ok {
			forms[v] = v
		}
	}
	for k := range forms {
		forms[k] = rl.resolve(forms[k])
	}
	return rl
}

// resolve - follow form -> lemma -> lemma... until it stops moving
func (rl *RuleLemmatizer) resolve(w string) string {
	for i := 0; i < maxlemmapasses; i++ {
		n, ok := rl.forms[w]
		if !ok || n == w {
			return w
		}
		w = n
	}
	return w
}

// Lemma - "blessings" --> "blessing" --> "bless"
func (rl *RuleLemmatizer) Lemma(w string) string {
	for i := 0; i < maxlemmapasses; i++ {
		n := rl.step(w)
		if n == w {
			return w
		}
		w = n
	}
	return w
}

func (rl *RuleLemmatizer) step(w string) string {
	if l, ok := rl.forms[w]; ok {
		return l
	}
	if len(w) < 4 {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ches"), strings.HasSuffix(w, "shes"), strings.HasSuffix(w, "xes"), strings.HasSuffix(w, "zzes"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "eed"):
		if measure(w[:len(w)-3]) > 0 {
			return w[:len(w)-1]
		}
		return w
	case strings.HasSuffix(w, "ing"):
		return restore(w, w[:len(w)-3])
	case strings.HasSuffix(w, "ed"):
		return restore(w, w[:len(w)-2])
	case strings.HasSuffix(w, "s"):
		for _, keep := range []string{"ss", "us", "is", "ous", "ys"} {
			if strings.HasSuffix(w, keep) {
				return w
			}
		}
		return w[:len(w)-1]
	}
	return w
}

// restore - clean up a stem after "-ing" or "-ed" came off; porter's step 1b
func restore(w string, stem string) string {
	if len(stem) < 2 || !hasvowel(stem) {
		return w
	}
	switch {
	case strings.HasSuffix(stem, "at"), strings.HasSuffix(stem, "bl"), strings.HasSuffix(stem, "iz"):
		return stem + "e"
	case doubled(stem):
		last := stem[len(stem)-1]
		if last != 'l' && last != 's' && last != 'z' {
			return stem[:len(stem)-1]
		}
		return stem
	case measure(stem) == 1 && cvc(stem):
		return stem + "e"
	}
	return stem
}

func isconsonant(s string, i int) bool {
	switch s[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		return i == 0 || !isconsonant(s, i-1)
	}
	return true
}

func hasvowel(s string) bool {
	for i := range s {
		if !isconsonant(s, i) {
			return true
		}
	}
	return false
}

// measure - porter's m in [C](VC)^m[V]
func measure(s string) int {
	m := 0
	i := 0
	n := len(s)
	for i < n && isconsonant(s, i) {
		i++
	}
	for i < n {
		for i < n && !isconsonant(s, i) {
			i++
		}
		if i >= n {
			break
		}
		for i < n && isconsonant(s, i) {
			i++
		}
		m++
	}
	return m
}

func doubled(s string) bool {
	n := len(s)
	return n >= 2 && s[n-1] == s[n-2] && isconsonant(s, n-1)
}

// cvc - consonant-vowel-consonant ending where the last is not w, x or y: "hop", "lov"
func cvc(s string) bool {
	n := len(s)
	if n < 3 {
		return false
	}
	if !isconsonant(s, n-3) || isconsonant(s, n-2) || !isconsonant(s, n-1) {
		return false
	}
	switch s[n-1] {
	case 'w', 'x', 'y':
		return false
	}
	return true
}

// ReadLemmaFile - "form<TAB>lemma" per line; blank lines and '#' comments are skipped
func ReadLemmaFile(fn string) (map[string]string, error) {
	const (
		FAIL = "ReadLemmaFile() could not parse line %d of '%s': %q"
	)

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pairs := make(map[string]string)
	sc := bufio.NewScanner(f)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf(FAIL, ln, fn, line)
		}
		pairs[parts[0]] = parts[1]
	}
	return pairs, sc.Err()
}

var (
	// IrregularForms - forms the suffix rules get wrong; lemmas map to themselves implicitly
	IrregularForms = map[string]string{
		"themselves": "themselves", "ourselves": "ourselves", "yourselves": "yourselves",
		"am": "be", "are": "be", "art": "be", "is": "be", "was": "be", "were": "be", "wert": "be", "been": "be", "being": "be",
		"has": "have", "hast": "have", "hath": "have", "had": "have", "having": "have",
		"did": "do", "does": "do", "doth": "do", "dost": "do", "done": "do", "doing": "do",
		"went": "go", "gone": "go", "goes": "go", "going": "go",
		"saw": "see", "seen": "see", "sees": "see", "seeing": "see", "seeth": "see",
		"said": "say", "says": "say", "saith": "say",
		"made": "make", "making": "make",
		"took": "take", "taken": "take", "taking": "take",
		"gave": "give", "given": "give", "giving": "give",
		"came": "come", "coming": "come",
		"knew": "know", "known": "know", "knoweth": "know",
		"thought": "think", "brought": "bring", "fought": "fight", "sought": "seek", "taught": "teach",
		"slain": "slay", "slew": "slay", "fell": "fall", "fallen": "fall",
		"born": "bear", "bore": "bear", "borne": "bear",
		"became": "become", "becomes": "become", "becoming": "become",
		"abides": "abide", "abode": "abide", "dwelt": "dwell",
		"left": "leave", "lost": "lose", "felt": "feel", "held": "hold", "led": "lead",
		"rose": "rise", "risen": "rise", "spoke": "speak", "spoken": "speak",
		"understood": "understand", "forsaken": "forsake", "forsook": "forsake",
		"men": "man", "women": "woman", "children": "child", "feet": "foot",
		"lives": "life", "selves": "self", "wives": "wife",
		"dying": "die", "lying": "lie", "living": "live", "lived": "live", "desired": "desire", "desiring": "desire",
		"perceived": "perceive", "perceiving": "perceive", "served": "serve", "serving": "serve",
		"deceived": "deceive", "freed": "free", "united": "unite", "devoted": "devote",
		"better": "good", "best": "good", "worse": "bad", "worst": "bad",
		// forms the rules would mangle
		"always": "always", "nothing": "nothing", "something": "something", "everything": "everything",
		"anything": "anything", "morning": "morning", "evening": "evening", "during": "during",
		"king": "king", "thing": "thing", "wings": "wing", "indeed": "indeed", "proceed": "proceed",
		"sacred": "sacred", "wicked": "wicked", "hundred": "hundred", "naked": "naked", "beloved": "beloved",
		"perhaps": "perhaps", "towards": "toward", "news": "news", "series": "series", "species": "species",
		"senses": "sense", "causes": "cause", "arjuna": "arjuna", "krishna": "krishna", "kesava": "kesava",
		"partha": "partha", "kaunteya": "kaunteya", "bharata": "bharata", "yoga": "yoga", "atma": "atma",
		"brahman": "brahman", "gunas": "guna", "vedas": "veda",
	}
)
