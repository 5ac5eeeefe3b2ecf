//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"gonum.org/v1/gonum/mat"
	"math"
)

const (
	coherenceepsilon = 0.01
)

// SemanticCoherence - mean over topics of sum_{i>j} log((D(wi,wj)+0.01)/D(wj)) for the top m terms of each
// topic, where D counts the documents holding a term (or both terms)
func SemanticCoherence(m Model, docs [][]string, top int) float64 {
	if m.K == 0 || len(docs) == 0 {
		return 0
	}

	var total float64
	for k := 0; k < m.K; k++ {
		total += TopicCoherence(m, docs, k, top)
	}
	return total / float64(m.K)
}

// TopicCoherence - the coherence of a single topic
func TopicCoherence(m Model, docs [][]string, k int, top int) float64 {
	terms := m.rankedterms(k, top)
	if len(terms) < 2 || len(docs) == 0 {
		return 0
	}

	col := make(map[string]int, len(terms))
	for i, t := range terms {
		col[t] = i
	}

	// X is the binary document-by-term incidence matrix; X'X holds the co-document counts
	x := mat.NewDense(len(docs), len(terms), nil)
	for d, doc := range docs {
		for _, w := range doc {
			if c, ok := col[w]; ok {
				x.Set(d, c, 1)
			}
		}
	}

	var co mat.Dense
	co.Mul(x.T(), x)

	var score float64
	for i := 1; i < len(terms); i++ {
		for j := 0; j < i; j++ {
			dj := co.At(j, j)
			if dj == 0 {
				continue
			}
			score += math.Log((co.At(i, j) + coherenceepsilon) / dj)
		}
	}
	return score
}

// rankedterms - the top n terms of topic k taken straight from Phi, so n may exceed the stored TopN
func (m Model) rankedterms(k int, n int) []string {
	if k < 0 || k >= len(m.Topics) || n < 1 {
		return nil
	}
	if n <= len(m.Topics[k].Terms) {
		return m.Terms(k)[:n]
	}
	wide := sortedtopics(m, n)
	tt := make([]string, len(wide[k].Terms))
	for i, t := range wide[k].Terms {
		tt[i] = t.Term
	}
	return tt
}
