//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/e-gun/nlp"
	"golang.org/x/exp/rand"
	"strings"
)

// variationalfit - the nlp pipeline; its initial draws follow cfg.Seed, but repeated fits still differ
func variationalfit(vocab Vocabulary, docs [][]int, cfg Config) ([][]float64, [][]float64, error) {
	const (
		FAIL = "%w: variational engine: %v"
	)

	// the vectoriser tokenises on letters only: hand it letter-only surrogates and map back afterwards
	corpus := make([]string, len(docs))
	for d, doc := range docs {
		words := make([]string, len(doc))
		for n, w := range doc {
			words[n] = surrogate(w)
		}
		corpus[d] = strings.Join(words, " ")
	}

	vectoriser := nlp.NewCountVectoriser()
	lda := newvariational(cfg)

	pipeline := nlp.NewPipeline(vectoriser, lda)

	docsOverTopics, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return nil, nil, fmt.Errorf(FAIL, str.ErrModelFit, err)
	}
	topicsOverWords := lda.Components()

	phi := make([][]float64, cfg.K)
	for k := 0; k < cfg.K; k++ {
		phi[k] = make([]float64, vocab.Len())
		for w := 0; w < vocab.Len(); w++ {
			if col, ok := vectoriser.Vocabulary[surrogate(w)]; ok {
				phi[k][w] = topicsOverWords.At(k, col)
			}
		}
		normalize(phi[k])
	}

	_, dc := docsOverTopics.Dims()
	theta := make([][]float64, dc)
	for d := 0; d < dc; d++ {
		theta[d] = make([]float64, cfg.K)
		for k := 0; k < cfg.K; k++ {
			theta[d][k] = docsOverTopics.At(k, d)
		}
		normalize(theta[d])
	}
	return phi, theta, nil
}

// newvariational - the nlp model configured from cfg, single process, seeded from cfg.Seed
func newvariational(cfg Config) *nlp.LatentDirichletAllocation {
	lda := nlp.NewLatentDirichletAllocation(cfg.K)
	lda.Processes = 1
	lda.Iterations = cfg.Iterations
	lda.TransformationPasses = vv.LDAXFORMPASSES
	lda.Rnd = rand.New(rand.NewSource(uint64(cfg.Seed)))
	if cfg.Alpha > 0 {
		lda.Alpha = cfg.Alpha
	}
	if cfg.Beta > 0 {
		lda.Eta = cfg.Beta
	}
	return lda
}

// surrogate - a lowercase letter-only name for term id w: 0 -> "qa", 25 -> "qz", 26 -> "qba"
func surrogate(w int) string {
	var b []byte
	for {
		b = append(b, byte('a'+w%26))
		w /= 26
		if w == 0 {
			break
		}
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return "q" + string(b)
}
