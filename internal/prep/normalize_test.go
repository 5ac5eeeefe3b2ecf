//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandContractions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Thou can't be slain", "Thou cannot be slain"},
		{"Can't you see", "Cannot you see"},
		{"they're wise and I'd know", "they are wise and I would know"},
		{"'Tis the field of dharma", "It is the field of dharma"},
		{"Arjuna’s chariot", "Arjuna chariot"},
		{"the gods' gifts", "the gods gifts"},
		{"don't grieve", "do not grieve"},
		{"no apostrophes here", "no apostrophes here"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandContractions(tt.in))
		})
	}
}

func TestSentencesSplitsAndCleans(t *testing.T) {
	got := Sentences("Dhritarashtra said: O Sanjaya,\n\n  what did my sons do?  The   fieldOf Kurukṣetra!")
	want := []string{
		"dhritarashtra said",
		"o sanjaya what did my sons do",
		"the field of kuruksetra",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sentences() mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldDiacriticals(t *testing.T) {
	assert.Equal(t, "Kunti Partha", FoldDiacriticals("Kuntī Pārtha"))
}

func TestLemma(t *testing.T) {
	rl := NewRuleLemmatizer(map[string]string{"sattvic": "sattva"})
	tests := map[string]string{
		"blessings": "bless",
		"blessed":   "bless",
		"clouds":    "cloud",
		"studies":   "study",
		"acting":    "act",
		"hoping":    "hope",
		"sitting":   "sit",
		"falling":   "fall",
		"agreed":    "agree",
		"need":      "need",
		"was":       "be",
		"men":       "man",
		"nothing":   "nothing",
		"thing":     "thing",
		"senses":    "sense",
		"glass":     "glass",
		"sattvic":   "sattva",
		"eternal":   "eternal",
	}
	for in, want := range tests {
		assert.Equal(t, want, rl.Lemma(in), in)
	}
}

func TestLemmaIsAFixedPoint(t *testing.T) {
	rl := NewRuleLemmatizer(nil)
	words := []string{"blessings", "warriors", "desires", "desired", "abandoning", "offered", "hopping",
		"senses", "gunas", "knowing", "perceived", "towards", "sacrificing", "qualities", "wishes"}
	for _, w := range words {
		l := rl.Lemma(w)
		assert.Equal(t, l, rl.Lemma(l), w)
	}
}

func TestNormalizeVerse(t *testing.T) {
	n := NewNormalizer()
	nv, err := n.NormalizeVerse(str.VerseRecord{Chapter: 2, Verse: 3, Text: "Thou art eternal and blessed; the Senses are clouded!"})
	require.NoError(t, err)

	assert.Equal(t, 2, nv.Chapter)
	assert.Equal(t, 3, nv.Verse)
	assert.Equal(t, []string{"thou art eternal and blessed", "the senses are clouded"}, nv.Sentences)
	if diff := cmp.Diff([]string{"eternal", "bless", "sense", "cloud"}, nv.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestStopwordsNeverSurvive(t *testing.T) {
	n := NewNormalizer()
	for w := range n.Stops {
		got, err := n.NormalizeText(w)
		require.NoError(t, err)
		assert.Empty(t, got, w)
	}

	nv, err := n.NormalizeVerse(str.VerseRecord{Text: "They themselves and ourselves and yourselves abide"})
	require.NoError(t, err)
	assert.Equal(t, []string{"abide"}, nv.Tokens)

	rl := NewRuleLemmatizer(nil)
	for _, w := range []string{"themselves", "ourselves", "yourselves"} {
		assert.Equal(t, w, rl.Lemma(w))
	}
}

func TestEmptyVerseIsRetained(t *testing.T) {
	n := NewNormalizer()
	recs := []str.VerseRecord{
		{Chapter: 1, Verse: 1, Text: "Arjuna wept"},
		{Chapter: 1, Verse: 2, Text: "and thou, O thou, unto me"},
		{Chapter: 1, Verse: 3, Text: "1.2.3"},
	}
	out, err := n.NormalizeCorpus(recs)
	require.NoError(t, err)
	require.Len(t, out, len(recs))

	assert.NotEmpty(t, out[0].Tokens)
	assert.NotNil(t, out[1].Tokens)
	assert.Empty(t, out[1].Tokens)
	assert.Empty(t, out[2].Tokens)
	assert.Equal(t, 2, out[1].Verse)
}

func TestNormalizeTextIsIdempotent(t *testing.T) {
	n := NewNormalizer()
	inputs := []string{
		"Thou art eternal and blessed",
		"Anger clouds the mind with sin; from anger comes delusion.",
		"He who sees Me everywhere, and sees everything in Me, is never lost to Me.",
		"The yogī, whose mind is ever-steady, attains supreme bliss—thus Kṛṣṇa spoke toArjuna.",
		"Weapons cannot cut it, fire cannot burn it, water cannot wet it, wind cannot dry it.",
	}
	for _, in := range inputs {
		once, err := n.NormalizeText(in)
		require.NoError(t, err)
		twice, err := n.NormalizeText(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, in)
	}
}

func TestInvalidInputAbortsCorpus(t *testing.T) {
	n := NewNormalizer()
	recs := []str.VerseRecord{
		{Chapter: 1, Verse: 1, Text: "fine"},
		{Chapter: 1, Verse: 2, Text: string([]byte{0xff, 0xfe})},
	}
	_, err := n.NormalizeCorpus(recs)
	assert.ErrorIs(t, err, str.ErrInvalidInput)

	_, err = n.NormalizeVerse(str.VerseRecord{Text: "bell\x07"})
	assert.ErrorIs(t, err, str.ErrInvalidInput)
}

func TestReadStopConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "va-stops.json")

	// first call writes the built-in list
	stops, err := ReadStopConfig(fn)
	require.NoError(t, err)
	assert.Contains(t, stops, "thou")
	assert.NotContains(t, stops, "self")
	_, err = os.Stat(fn)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(fn, []byte(`["arjuna", "krishna"]`), 0644))
	stops, err = ReadStopConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"arjuna", "krishna"}, stops)

	n, err := NewNormalizerFromConfig(str.PrepConfig{StopFile: fn})
	require.NoError(t, err)
	nv, err := n.NormalizeVerse(str.VerseRecord{Text: "Krishna spoke to Arjuna"})
	require.NoError(t, err)
	assert.Equal(t, []string{"speak", "to"}, nv.Tokens)
}

func TestReadLemmaFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "lemmas.tsv")
	require.NoError(t, os.WriteFile(fn, []byte("# extra forms\nrajasic\trajas\n\ntamasic\ttamas\n"), 0644))
	pairs, err := ReadLemmaFile(fn)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rajasic": "rajas", "tamasic": "tamas"}, pairs)

	require.NoError(t, os.WriteFile(fn, []byte("one two three\n"), 0644))
	_, err = ReadLemmaFile(fn)
	assert.Error(t, err)
}
