//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twothemes() [][]string {
	war := []string{"arrow chariot battle conch army warrior", "army battle bow warrior conch arrow",
		"chariot warrior army bow battle conch", "conch arrow army chariot bow battle",
		"battle warrior bow arrow chariot army"}
	devotion := []string{"devotion lord surrender worship grace mercy", "lord grace devotion mercy worship surrender",
		"worship mercy lord surrender devotion grace", "surrender devotion grace lord mercy worship",
		"mercy worship surrender grace lord devotion"}

	var docs [][]string
	for i := range war {
		docs = append(docs, strings.Fields(war[i]), strings.Fields(devotion[i]))
	}
	return docs
}

func testconfig(k int) Config {
	c := DefaultConfig()
	c.K = k
	c.Iterations = 200
	return c
}

func TestBuildVocabularyPrunesAndSorts(t *testing.T) {
	docs := [][]string{{"soul", "body", "soul"}, {"soul", "mind"}, {"body", "sky"}}
	v := BuildVocabulary(docs, 2)
	assert.Equal(t, []string{"body", "soul"}, v.Terms)
	assert.Equal(t, []int{2, 2}, v.DocFreq)

	ids, excluded := v.Encode([][]string{{"soul", "sky"}, {"mind"}, {}})
	assert.Equal(t, [][]int{{1}, {}, {}}, ids)
	assert.Equal(t, []int{1, 2}, excluded)
}

func TestProportionsSumToOne(t *testing.T) {
	docs := append(twothemes(), []string{}, []string{"hapax"})
	m, err := Fit(docs, testconfig(3))
	require.NoError(t, err)
	require.Len(t, m.Docs, len(docs))

	for _, dt := range m.Docs {
		var sum float64
		for _, p := range dt.Proportions {
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "document %d", dt.Doc)
	}
	for k := range m.Phi {
		var sum float64
		for _, p := range m.Phi[k] {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "topic %d", k)
	}
}

func TestExcludedDocumentsAreUniform(t *testing.T) {
	docs := append(twothemes(), []string{"hapax"})
	m, err := Fit(docs, testconfig(4))
	require.NoError(t, err)

	last := m.Docs[len(docs)-1]
	assert.True(t, last.Excluded)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, last.Proportions)
	assert.False(t, m.Docs[0].Excluded)
	assert.NotContains(t, m.Vocab, "hapax")
}

func TestSameSeedSameModel(t *testing.T) {
	docs := twothemes()
	a, err := Fit(docs, testconfig(2))
	require.NoError(t, err)
	b, err := Fit(docs, testconfig(2))
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("refit differs (-first +second):\n%s", diff)
	}
}

func TestTwoThemesSeparate(t *testing.T) {
	m, err := Fit(twothemes(), testconfig(2))
	require.NoError(t, err)

	war := gen.ArgMax(m.Docs[0].Proportions)
	devotion := gen.ArgMax(m.Docs[1].Proportions)
	assert.NotEqual(t, war, devotion)

	for i, dt := range m.Docs {
		want := war
		if i%2 == 1 {
			want = devotion
		}
		assert.Equal(t, want, gen.ArgMax(dt.Proportions), "document %d", i)
	}

	top := gen.ToSet(m.Terms(war)[:6])
	assert.Contains(t, top, "battle")
	assert.Contains(t, top, "chariot")
	assert.Equal(t, []int{5, 5}, DocsPerTopic(m))
}

func TestFitErrors(t *testing.T) {
	_, err := Fit(twothemes(), testconfig(0))
	assert.ErrorIs(t, err, str.ErrModelFit)

	_, err = Fit(nil, testconfig(2))
	assert.ErrorIs(t, err, str.ErrModelFit)

	_, err = Fit([][]string{{"alpha"}, {"beta"}, {"gamma"}}, testconfig(2))
	assert.ErrorIs(t, err, str.ErrModelFit)

	c := testconfig(2)
	c.Engine = "oracle"
	_, err = Fit(twothemes(), c)
	assert.ErrorIs(t, err, str.ErrModelFit)
}

func TestTopTermsAreOrdered(t *testing.T) {
	c := testconfig(2)
	c.TopN = 4
	m, err := Fit(twothemes(), c)
	require.NoError(t, err)

	for _, tp := range m.Topics {
		require.Len(t, tp.Terms, 4)
		assert.True(t, sort.SliceIsSorted(tp.Terms, func(i, j int) bool {
			return tp.Terms[i].Weight > tp.Terms[j].Weight
		}))
	}
	assert.Len(t, strings.Split(Label(m, 0), ", "), 3)
}

func TestMatricesMatchModel(t *testing.T) {
	m, err := Fit(twothemes(), testconfig(2))
	require.NoError(t, err)

	phi := m.PhiMatrix()
	r, c := phi.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, len(m.Vocab), c)
	assert.Equal(t, m.Phi[1][3], phi.At(1, 3))

	theta := m.ThetaMatrix()
	r, c = theta.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, len(m.Docs), c)
	assert.Equal(t, m.Docs[4].Proportions[1], theta.At(1, 4))
}

func TestSemanticCoherence(t *testing.T) {
	m := Model{
		K:      1,
		Vocab:  []string{"a", "b"},
		Topics: []Topic{{ID: 0, Terms: []TermWeight{{"a", 0.6}, {"b", 0.4}}}},
		Phi:    [][]float64{{0.6, 0.4}},
	}
	docs := [][]string{{"a", "b"}, {"a", "b"}, {"c"}, {"a"}}
	// D(a) = 3, D(a,b) = 2
	assert.InDelta(t, math.Log(2.01/3), SemanticCoherence(m, docs, 2), 1e-9)
	assert.Equal(t, 0.0, SemanticCoherence(m, docs, 1))
}

func TestHeldOutSplit(t *testing.T) {
	docs := append(twothemes(), []string{"lonely"})
	sp, err := HeldOut(docs, 0.5, 0.5, 7)
	require.NoError(t, err)

	assert.Len(t, sp.Docs, 5)
	assert.Len(t, sp.Withheld, 5)
	assert.NotContains(t, sp.Docs, len(docs)-1)

	for i, d := range sp.Docs {
		assert.NotEmpty(t, sp.Withheld[i])
		assert.NotEmpty(t, sp.Train[d])
		joined := append(append([]string{}, sp.Train[d]...), sp.Withheld[i]...)
		sort.Strings(joined)
		orig := append([]string{}, docs[d]...)
		sort.Strings(orig)
		assert.Equal(t, orig, joined)
	}

	again, err := HeldOut(docs, 0.5, 0.5, 7)
	require.NoError(t, err)
	assert.Equal(t, sp, again)

	_, err = HeldOut(docs, 0, 0.5, 7)
	assert.ErrorIs(t, err, str.ErrModelFit)
	_, err = HeldOut([][]string{{"x"}}, 0.5, 0.5, 7)
	assert.ErrorIs(t, err, str.ErrModelFit)
}

func TestHeldOutLikelihoodIsALogProbability(t *testing.T) {
	sp, err := HeldOut(twothemes(), 0.3, 0.5, 1)
	require.NoError(t, err)
	m, err := Fit(sp.Train, testconfig(2))
	require.NoError(t, err)

	ll, err := HeldOutLikelihood(m, sp)
	require.NoError(t, err)
	assert.Less(t, ll, 0.0)
	assert.False(t, math.IsInf(ll, 0))
}

func TestSearchK(t *testing.T) {
	c := testconfig(2)
	c.Iterations = 50
	c.HeldOutFrac = 0.3
	dd, err := SearchK(twothemes(), []int{4, 2, 3, 2}, c)
	require.NoError(t, err)
	require.Len(t, dd, 3)

	for i, k := range []int{2, 3, 4} {
		assert.Equal(t, k, dd[i].K)
		assert.Less(t, dd[i].HeldOutLikelihood, 0.0)
		assert.False(t, math.IsNaN(dd[i].SemanticCoherence))
	}

	_, err = SearchK(twothemes(), nil, c)
	assert.ErrorIs(t, err, str.ErrModelFit)
	_, err = SearchK(twothemes(), []int{0}, c)
	assert.ErrorIs(t, err, str.ErrModelFit)
}

func TestSummaries(t *testing.T) {
	docs := append(twothemes(), []string{})
	m, err := Fit(docs, testconfig(2))
	require.NoError(t, err)

	per := DocsPerTopic(m)
	assert.Equal(t, 10, per[0]+per[1])

	w := TopicWeights(m)
	assert.InDelta(t, 1.0, math.Max(w[0], w[1]), 1e-12)

	tops := TopDocuments(m, 3)
	require.Len(t, tops, 2)
	for k, dd := range tops {
		require.Len(t, dd, 3)
		assert.NotContains(t, dd, len(docs)-1)
		assert.GreaterOrEqual(t, m.Docs[dd[0]].Proportions[k], m.Docs[dd[2]].Proportions[k])
	}
}

func TestVariationalEngine(t *testing.T) {
	c := testconfig(2)
	c.Engine = VARIATIONAL
	c.Iterations = 20
	m, err := Fit(twothemes(), c)
	require.NoError(t, err)
	assert.Equal(t, VARIATIONAL, m.Engine)

	for _, dt := range m.Docs {
		var sum float64
		for _, p := range dt.Proportions {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}
}

func TestVariationalDrawsFollowSeed(t *testing.T) {
	c := testconfig(3)
	c.Seed = 7
	a, b := newvariational(c), newvariational(c)
	require.NotNil(t, a.Rnd)
	assert.Equal(t, a.Rnd.Uint64(), b.Rnd.Uint64())
	assert.Equal(t, 1, a.Processes)
	assert.Equal(t, c.K, a.K)

	c.Seed = 8
	assert.NotEqual(t, newvariational(c).Rnd.Uint64(), a.Rnd.Uint64())
}

func TestSurrogatesAreDistinctLetters(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 2000; i++ {
		s := surrogate(i)
		assert.Equal(t, strings.ToLower(s), s)
		assert.Equal(t, "", strings.Trim(s, "abcdefghijklmnopqrstuvwxyz"))
		seen[s] = struct{}{}
	}
	assert.Len(t, seen, 2000)
	assert.Equal(t, "qa", surrogate(0))
	assert.Equal(t, "qba", surrogate(26))
}
