//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"gonum.org/v1/gonum/floats"
	"sort"
	"strings"
)

//
// SUMMARIES
//

// DocsPerTopic - N documents have topic X as their dominant topic; excluded documents are not counted
func DocsPerTopic(m Model) []int {
	counter := make([]int, m.K)
	docsOverTopics := m.ThetaMatrix()
	dr, dc := docsOverTopics.Dims()
	for doc := 0; doc < dc; doc++ {
		if m.Docs[doc].Excluded {
			continue
		}
		best := float64(0)
		winner := 0
		for topic := 0; topic < dr; topic++ {
			if docsOverTopics.At(topic, doc) > best {
				winner = topic
				best = docsOverTopics.At(topic, doc)
			}
		}
		counter[winner] += 1
	}
	return counter
}

// TopicWeights - total accumulated weight of each topic, scaled so the heaviest is 1
func TopicWeights(m Model) []float64 {
	counter := make([]float64, m.K)
	docsOverTopics := m.ThetaMatrix()
	dr, dc := docsOverTopics.Dims()
	for doc := 0; doc < dc; doc++ {
		if m.Docs[doc].Excluded {
			continue
		}
		for topic := 0; topic < dr; topic++ {
			counter[topic] += docsOverTopics.At(topic, doc)
		}
	}

	if len(counter) == 0 {
		return counter
	}
	high := floats.Max(counter)
	if high == 0 {
		return counter
	}
	floats.Scale(1/high, counter)
	return counter
}

// TopDocuments - for each topic the n documents most associated with it, strongest first
func TopDocuments(m Model, n int) [][]int {
	tops := make([][]int, m.K)
	for topic := 0; topic < m.K; topic++ {
		var cand []DocumentTopics
		for _, dt := range m.Docs {
			if !dt.Excluded {
				cand = append(cand, dt)
			}
		}
		sort.SliceStable(cand, func(i, j int) bool {
			return cand[i].Proportions[topic] > cand[j].Proportions[topic]
		})
		if n < len(cand) {
			cand = cand[:n]
		}
		tops[topic] = make([]int, len(cand))
		for i, c := range cand {
			tops[topic][i] = c.Doc
		}
	}
	return tops
}

// Label - a short name for topic k built from its leading terms
func Label(m Model, k int) string {
	tt := m.Terms(k)
	if len(tt) > vv.LDALABELTERMS {
		tt = tt[:vv.LDALABELTERMS]
	}
	return strings.Join(tt, vv.SUMMARYTERMSEP)
}
