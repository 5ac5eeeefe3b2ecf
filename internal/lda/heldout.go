//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"golang.org/x/exp/rand"
	"math"
	"sort"
)

// Split - a training corpus with tokens withheld from a fraction of its documents
type Split struct {
	Train    [][]string
	Docs     []int
	Withheld [][]string
}

// HeldOut - pick frac of the documents that have at least two tokens and withhold prop of each one's tokens;
// every chosen document keeps at least one token and loses at least one
func HeldOut(docs [][]string, frac float64, prop float64, seed int64) (Split, error) {
	const (
		FAIL1 = "%w: held-out fraction and proportion must lie in (0,1)"
		FAIL2 = "%w: no document is long enough to hold tokens out"
	)

	if frac <= 0 || frac >= 1 || prop <= 0 || prop >= 1 {
		return Split{}, fmt.Errorf(FAIL1, str.ErrModelFit)
	}

	var eligible []int
	for i, d := range docs {
		if len(d) >= 2 {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return Split{}, fmt.Errorf(FAIL2, str.ErrModelFit)
	}

	rng := rand.New(rand.NewSource(uint64(seed)))

	n := int(math.Round(frac * float64(len(eligible))))
	if n < 1 {
		n = 1
	}

	chosen := make([]int, n)
	for i, p := range rng.Perm(len(eligible))[:n] {
		chosen[i] = eligible[p]
	}
	sort.Ints(chosen)

	sp := Split{
		Train:    make([][]string, len(docs)),
		Docs:     chosen,
		Withheld: make([][]string, n),
	}
	for i, d := range docs {
		sp.Train[i] = append([]string{}, d...)
	}

	for i, d := range chosen {
		doc := docs[d]
		nw := int(math.Floor(prop * float64(len(doc))))
		if nw < 1 {
			nw = 1
		}
		if nw > len(doc)-1 {
			nw = len(doc) - 1
		}

		drop := make(map[int]struct{}, nw)
		for _, p := range rng.Perm(len(doc))[:nw] {
			drop[p] = struct{}{}
		}

		kept := make([]string, 0, len(doc)-nw)
		held := make([]string, 0, nw)
		for p, w := range doc {
			if _, ok := drop[p]; ok {
				held = append(held, w)
			} else {
				kept = append(kept, w)
			}
		}
		sp.Train[d] = kept
		sp.Withheld[i] = held
	}
	return sp, nil
}

// HeldOutLikelihood - for each held-out document the mean of log(sum_k theta[d][k]*phi[k][w]) over its
// withheld tokens, averaged across documents; tokens outside the model's vocabulary are not scored
func HeldOutLikelihood(m Model, sp Split) (float64, error) {
	const (
		FAIL = "%w: none of the withheld tokens is in the model vocabulary"
	)

	index := make(map[string]int, len(m.Vocab))
	for i, w := range m.Vocab {
		index[w] = i
	}

	var total float64
	var scored int
	for i, d := range sp.Docs {
		if d >= len(m.Docs) {
			continue
		}
		theta := m.Docs[d].Proportions

		var ll float64
		var n int
		for _, w := range sp.Withheld[i] {
			id, ok := index[w]
			if !ok {
				continue
			}
			var p float64
			for k := 0; k < m.K; k++ {
				p += theta[k] * m.Phi[k][id]
			}
			ll += math.Log(p)
			n++
		}
		if n > 0 {
			total += ll / float64(n)
			scored++
		}
	}

	if scored == 0 {
		return 0, fmt.Errorf(FAIL, str.ErrModelFit)
	}
	return total / float64(scored), nil
}
