//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"github.com/e-gun/VerseAnalytics/internal/gen"
)

// Vocabulary - sorted terms and their ids; DocFreq[i] is the number of documents containing Terms[i]
type Vocabulary struct {
	Terms   []string
	DocFreq []int
	index   map[string]int
}

// BuildVocabulary - every term found in at least minDF documents, alphabetized
func BuildVocabulary(docs [][]string, minDF int) Vocabulary {
	if minDF < 1 {
		minDF = 1
	}

	df := make(map[string]int)
	for _, d := range docs {
		for w := range gen.ToSet(d) {
			df[w]++
		}
	}

	var v Vocabulary
	for _, w := range gen.SortedKeys(df) {
		if df[w] >= minDF {
			v.Terms = append(v.Terms, w)
			v.DocFreq = append(v.DocFreq, df[w])
		}
	}
	v.reindex()
	return v
}

func (v *Vocabulary) reindex() {
	v.index = make(map[string]int, len(v.Terms))
	for i, w := range v.Terms {
		v.index[w] = i
	}
}

func (v Vocabulary) Len() int {
	return len(v.Terms)
}

// ID - the id of a term and whether the term survived pruning
func (v Vocabulary) ID(w string) (int, bool) {
	i, ok := v.index[w]
	return i, ok
}

// Encode - id sequences for each document plus the indices of documents left empty by pruning
func (v Vocabulary) Encode(docs [][]string) ([][]int, []int) {
	ids := make([][]int, len(docs))
	var excluded []int
	for i, d := range docs {
		ids[i] = []int{}
		for _, w := range d {
			if id, ok := v.index[w]; ok {
				ids[i] = append(ids[i], id)
			}
		}
		if len(ids[i]) == 0 {
			excluded = append(excluded, i)
		}
	}
	return ids, excluded
}
