//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sent

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"math"
	"strings"
	"unicode/utf8"
)

var (
	Msg = mm.NewMessageMaker()
)

// Config - the valence shifter window and weights
type Config struct {
	NegBefore       int
	NegAfter        int
	AmpWeight       float64
	DeAmpWeight     float64
	LengthNormalize bool
}

func DefaultConfig() Config {
	return Config{
		NegBefore:       vv.SENTNEGBEFORE,
		NegAfter:        vv.SENTNEGAFTER,
		AmpWeight:       vv.SENTAMPWEIGHT,
		DeAmpWeight:     vv.SENTDEAMPWEIGHT,
		LengthNormalize: vv.SENTLENGTHNORM,
	}
}

func ConfigFrom(sc str.SentimentConfig) Config {
	return Config{
		NegBefore:       sc.NegBefore,
		NegAfter:        sc.NegAfter,
		AmpWeight:       sc.AmpWeight,
		DeAmpWeight:     sc.DeAmpWeight,
		LengthNormalize: sc.LengthNormalize,
	}
}

// Scorer - stateless once built: the same lexicon and config always yield the same score
type Scorer struct {
	lex   Lexicon
	cfg   Config
	neg   map[string]struct{}
	amp   map[string]struct{}
	deamp map[string]struct{}
}

func NewScorer(lex Lexicon, cfg Config) *Scorer {
	return &Scorer{
		lex:   lex,
		cfg:   cfg,
		neg:   gen.ToSet(lex.Negators),
		amp:   gen.ToSet(lex.Amplifiers),
		deamp: gen.ToSet(lex.DeAmplifiers),
	}
}

// ScoreSentence - sum of shifted polarities in one chunk, optionally divided by sqrt(word count)
func (s *Scorer) ScoreSentence(words []string) (float64, int) {
	if len(words) == 0 {
		return 0, 0
	}

	total := 0.0
	hits := 0
	for i, w := range words {
		p, ok := s.lex.Polarity[w]
		if !ok || p == 0 {
			continue
		}
		hits++

		lo := max(0, i-s.cfg.NegBefore)
		hi := min(len(words), i+s.cfg.NegAfter+1)

		negs := 0
		for j := lo; j < hi; j++ {
			if j == i {
				continue
			}
			if _, n := s.neg[words[j]]; n {
				negs++
			}
		}

		// intensifiers only count when they come before the polarized word
		amps := 0
		deamps := 0
		for j := lo; j < i; j++ {
			if _, a := s.amp[words[j]]; a {
				amps++
			}
			if _, d := s.deamp[words[j]]; d {
				deamps++
			}
		}

		negated := negs%2 == 1
		if negated {
			// "not very good" is weaker than "not good"
			deamps += amps
			amps = 0
			p = -p
		}

		p *= 1 + s.cfg.AmpWeight*float64(amps)
		p *= math.Max(0, 1-s.cfg.DeAmpWeight*float64(deamps))
		total += p
	}

	if s.cfg.LengthNormalize {
		total = total / math.Sqrt(float64(len(words)))
	}
	return total, hits
}

// ScoreVerse - the mean of the chunk scores; a verse with no lexicon hit is 0 and unmatched
func (s *Scorer) ScoreVerse(nv str.NormalizedVerse) (str.SentimentResult, error) {
	const (
		FAIL = "%w: ScoreVerse() got non-text in %s"
	)

	res := str.SentimentResult{Chapter: nv.Chapter, Verse: nv.Verse}

	sum := 0.0
	chunks := 0
	for _, c := range nv.Sentences {
		if !utf8.ValidString(c) {
			return res, fmt.Errorf(FAIL, str.ErrInvalidInput, nv.Locus())
		}
		ww := strings.Fields(c)
		if len(ww) == 0 {
			continue
		}
		sc, h := s.ScoreSentence(ww)
		sum += sc
		chunks++
		res.Words += len(ww)
		if h > 0 {
			res.Matched = true
		}
	}

	if chunks > 0 && res.Matched {
		res.Score = sum / float64(chunks)
	}
	return res, nil
}

// ScoreCorpus - one result per verse; a malformed verse is logged and scored 0 so the alignment holds
func (s *Scorer) ScoreCorpus(nvs []str.NormalizedVerse) []str.SentimentResult {
	const (
		MSG1 = "ScoreCorpus(): %s scored 0: %s"
		MSG2 = "ScoreCorpus(): %d verses scored; %d had no lexicon match"
	)

	out := make([]str.SentimentResult, len(nvs))
	nomatch := 0
	for i := range nvs {
		r, err := s.ScoreVerse(nvs[i])
		if err != nil {
			Msg.WARN(fmt.Sprintf(MSG1, nvs[i].Locus(), err.Error()))
			r = str.SentimentResult{Chapter: nvs[i].Chapter, Verse: nvs[i].Verse}
		}
		if !r.Matched {
			nomatch++
		}
		out[i] = r
	}
	Msg.PEEK(fmt.Sprintf(MSG2, len(out), nomatch))
	return out
}
