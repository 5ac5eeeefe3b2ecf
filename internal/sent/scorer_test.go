//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func scenarioLexicon() Lexicon {
	def := DefaultLexicon()
	return Lexicon{
		Polarity:     map[string]float64{"eternal": 0.5, "blessed": 0.6, "anger": -0.5, "sin": -0.7, "good": 0.5},
		Negators:     def.Negators,
		Amplifiers:   def.Amplifiers,
		DeAmplifiers: def.DeAmplifiers,
	}
}

func verse(ch int, vs int, sentences ...string) str.NormalizedVerse {
	return str.NormalizedVerse{Chapter: ch, Verse: vs, Sentences: sentences, Cleaned: strings.Join(sentences, ". ")}
}

func TestScenarioVerses(t *testing.T) {
	s := NewScorer(scenarioLexicon(), DefaultConfig())

	rr := s.ScoreCorpus([]str.NormalizedVerse{
		verse(1, 1, "thou art eternal and blessed"),
		verse(1, 2, "anger clouds the mind with sin"),
	})
	require.Len(t, rr, 2)

	assert.Greater(t, rr[0].Score, 0.0)
	assert.Less(t, rr[1].Score, 0.0)
	assert.InDelta(t, 1.1/2.2360679775, rr[0].Score, 1e-6)
	assert.True(t, rr[0].Matched)
	assert.Equal(t, 1, rr[1].Chapter)
	assert.Equal(t, 2, rr[1].Verse)
}

func TestNeutralVerseScoresZero(t *testing.T) {
	s := NewScorer(scenarioLexicon(), DefaultConfig())
	r, err := s.ScoreVerse(verse(3, 4, "the chariot stood between the two armies"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Score)
	assert.False(t, r.Matched)

	r, err = s.ScoreVerse(verse(3, 5))
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Score)
}

func TestValenceShifters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LengthNormalize = false
	s := NewScorer(scenarioLexicon(), cfg)

	plain, _ := s.ScoreSentence(strings.Fields("this is good"))
	negated, _ := s.ScoreSentence(strings.Fields("this is not good"))
	twice, _ := s.ScoreSentence(strings.Fields("not never good"))
	amplified, _ := s.ScoreSentence(strings.Fields("this is very good"))
	softened, _ := s.ScoreSentence(strings.Fields("this is slightly good"))
	after, _ := s.ScoreSentence(strings.Fields("good is not"))
	outside, _ := s.ScoreSentence(strings.Fields("not one two three four good"))

	assert.InDelta(t, 0.5, plain, tolerance)
	assert.InDelta(t, -0.5, negated, tolerance)
	assert.InDelta(t, 0.5, twice, tolerance)
	assert.InDelta(t, 0.5*1.8, amplified, tolerance)
	assert.InDelta(t, 0.25, softened, tolerance)
	assert.InDelta(t, -0.5, after, tolerance)
	assert.InDelta(t, 0.5, outside, tolerance)

	notvery, _ := s.ScoreSentence(strings.Fields("not very good"))
	assert.InDelta(t, -0.25, notvery, tolerance)
}

func TestVerseIsMeanOfChunks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LengthNormalize = false
	s := NewScorer(scenarioLexicon(), cfg)

	r, err := s.ScoreVerse(verse(2, 1, "eternal", "sin", "nothing here"))
	require.NoError(t, err)
	assert.InDelta(t, (0.5-0.7+0)/3, r.Score, tolerance)
}

func TestMalformedVerseDegradesToZero(t *testing.T) {
	s := NewScorer(scenarioLexicon(), DefaultConfig())
	bad := verse(1, 1, string([]byte{0xff, 0xfe}))

	_, err := s.ScoreVerse(bad)
	assert.ErrorIs(t, err, str.ErrInvalidInput)

	rr := s.ScoreCorpus([]str.NormalizedVerse{bad, verse(1, 2, "blessed")})
	require.Len(t, rr, 2)
	assert.Equal(t, 0.0, rr[0].Score)
	assert.Greater(t, rr[1].Score, 0.0)
}

func TestCorpusMean(t *testing.T) {
	rr := []str.SentimentResult{
		{Chapter: 1, Verse: 1, Score: 0.6, Matched: true},
		{Chapter: 1, Verse: 2, Score: -0.2, Matched: true},
		{Chapter: 2, Verse: 1, Score: 0, Matched: false},
		{Chapter: 2, Verse: 2, Score: 0.2, Matched: true},
	}

	assert.InDelta(t, 0.15, CorpusMean(rr, false), tolerance)
	assert.InDelta(t, 0.6/3, CorpusMean(rr, true), tolerance)
	assert.Equal(t, 0.0, CorpusMean(nil, false))

	st := Describe(rr, false)
	assert.Equal(t, 4, st.N)
	assert.Equal(t, 3, st.Matched)
	assert.InDelta(t, -0.2, st.Min, tolerance)
	assert.InDelta(t, 0.6, st.Max, tolerance)
	assert.GreaterOrEqual(t, st.Mean, st.Min)
	assert.LessOrEqual(t, st.Mean, st.Max)

	ch := ChapterMeans(rr, false)
	require.Len(t, ch, 2)
	assert.Equal(t, 1, ch[0].Chapter)
	assert.InDelta(t, 0.2, ch[0].Mean, tolerance)
	assert.InDelta(t, 0.1, ch[1].Mean, tolerance)
}

func TestDefaultLexicon(t *testing.T) {
	lx := DefaultLexicon()
	assert.InDelta(t, 0.5, lx.Polarity["eternal"], tolerance)
	assert.Less(t, lx.Polarity["sin"], 0.0)
	assert.Contains(t, lx.Negators, "not")
	assert.Contains(t, lx.Amplifiers, "very")
}

func TestLoadLexiconFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"full.json": `{"polarity": {"Eternal": 0.5, "sin": -0.7}, "negators": ["not"]}`,
		"bare.json": `{"eternal": 0.5, "sin": -0.7}`,
		"full.yaml": "polarity:\n  eternal: 0.5\n  sin: -0.7\nnegators: [not]\n",
		"bare.yml":  "eternal: 0.5\nsin: -0.7\n",
		"afinn.tsv": "# afinn style\neternal\t0.5\nsin\t-0.7\n",
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			fn := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(fn, []byte(body), 0644))
			lx, err := LoadLexicon(fn)
			require.NoError(t, err)
			assert.InDelta(t, 0.5, lx.Polarity["eternal"], tolerance)
			assert.InDelta(t, -0.7, lx.Polarity["sin"], tolerance)
			assert.Contains(t, lx.Negators, "not")
			assert.NotEmpty(t, lx.Amplifiers)
		})
	}
}

func TestLoadLexiconRejects(t *testing.T) {
	dir := t.TempDir()

	fn := filepath.Join(dir, "lex.csv")
	require.NoError(t, os.WriteFile(fn, []byte("eternal,0.5"), 0644))
	_, err := LoadLexicon(fn)
	assert.Error(t, err)

	fn = filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(fn, []byte(`{}`), 0644))
	_, err = LoadLexicon(fn)
	assert.ErrorIs(t, err, str.ErrInvalidInput)

	fn = filepath.Join(dir, "broken.tsv")
	require.NoError(t, os.WriteFile(fn, []byte("eternal\tlots\n"), 0644))
	_, err = LoadLexicon(fn)
	assert.Error(t, err)
}
