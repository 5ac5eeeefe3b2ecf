//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	Msg = mm.NewMessageMaker()

	camelseam = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	sentences = strings.NewReplacer("?", ".", "!", ".", ";", ".", ":", ".", "·", ".", "।", ".", "॥", ".")
)

// Normalizer - turns raw verse text into sentences for the scorer and tokens for the topic model
type Normalizer struct {
	Stops      map[string]struct{}
	Lemmatizer Lemmatizer
}

// NewNormalizer - the built-in stopwords and lemmatizer
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Stops:      GetStopSet(),
		Lemmatizer: NewRuleLemmatizer(nil),
	}
}

// NewNormalizerFromConfig - stopwords from cfg.StopFile and extra lemma pairs from cfg.LemmaFile, when given
func NewNormalizerFromConfig(cfg str.PrepConfig) (*Normalizer, error) {
	stops, err := ReadStopConfig(cfg.StopFile)
	if err != nil {
		return nil, err
	}

	var extra map[string]string
	if cfg.LemmaFile != "" {
		extra, err = ReadLemmaFile(cfg.LemmaFile)
		if err != nil {
			return nil, err
		}
	}

	return &Normalizer{
		Stops:      gen.ToSet(stops),
		Lemmatizer: NewRuleLemmatizer(extra),
	}, nil
}

// NormalizeCorpus - one NormalizedVerse per VerseRecord, in the same order; a bad record aborts the run
func (n *Normalizer) NormalizeCorpus(recs []str.VerseRecord) ([]str.NormalizedVerse, error) {
	const (
		MSG1 = "NormalizeCorpus(): %d verses normalized; %d are empty after stopword removal"
	)
	out := make([]str.NormalizedVerse, len(recs))
	empty := 0
	for i := range recs {
		nv, err := n.NormalizeVerse(recs[i])
		if err != nil {
			return nil, err
		}
		if len(nv.Tokens) == 0 {
			empty++
		}
		out[i] = nv
	}
	Msg.PEEK(fmt.Sprintf(MSG1, len(out), empty))
	return out, nil
}

// NormalizeVerse - steps (1) through (7): contractions, whitespace, camel seams, punctuation, case, lemmas, stops
func (n *Normalizer) NormalizeVerse(v str.VerseRecord) (str.NormalizedVerse, error) {
	const (
		FAIL = "NormalizeVerse() rejected %s: %w"
	)

	nv := str.NormalizedVerse{Chapter: v.Chapter, Verse: v.Verse, Tokens: []string{}}

	if err := CheckText(v.Text); err != nil {
		return nv, fmt.Errorf(FAIL, v.Locus(), err)
	}

	nv.Sentences = Sentences(v.Text)
	nv.Cleaned = strings.Join(nv.Sentences, ". ")

	for _, s := range nv.Sentences {
		for _, w := range strings.Fields(s) {
			if _, stop := n.Stops[w]; stop {
				continue
			}
			l := n.Lemmatizer.Lemma(w)
			if _, stop := n.Stops[l]; stop || gen.AllDigits(l) {
				continue
			}
			nv.Tokens = append(nv.Tokens, l)
		}
	}
	return nv, nil
}

// NormalizeText - the token stream as a single string; normalizing its output changes nothing
func (n *Normalizer) NormalizeText(s string) (string, error) {
	nv, err := n.NormalizeVerse(str.VerseRecord{Text: s})
	if err != nil {
		return "", err
	}
	return strings.Join(nv.Tokens, " "), nil
}

// Sentences - steps (1) through (5): lowercase, punctuation-free sentence chunks
func Sentences(s string) []string {
	s = ExpandContractions(s)
	s = strings.Join(strings.Fields(s), " ")
	s = camelseam.ReplaceAllString(s, "$1 $2")
	s = FoldDiacriticals(s)

	var chunks []string
	for _, c := range strings.Split(sentences.Replace(s), ".") {
		c = strings.ToLower(stripPunctuation(c))
		c = strings.Join(strings.Fields(c), " ")
		if c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

// FoldDiacriticals - "Kuntī" --> "Kunti"
func FoldDiacriticals(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	r, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return r
}

// stripPunctuation - everything that is not a letter or a number becomes a space
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return ' '
	}, s)
}

// CheckText - valid utf8 without control characters other than whitespace
func CheckText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: not valid utf8", str.ErrInvalidInput)
	}
	for _, r := range s {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return fmt.Errorf("%w: control character %U", str.ErrInvalidInput, r)
		}
	}
	return nil
}
