//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"sort"
)

// KDiagnostic - the two model-selection criteria for one candidate topic count
type KDiagnostic struct {
	K                 int     `json:"k"`
	SemanticCoherence float64 `json:"semantic_coherence"`
	HeldOutLikelihood float64 `json:"heldout_likelihood"`
}

// SearchK - fit once per candidate k and report coherence against held-out likelihood; choosing k is left
// to whoever reads the numbers
func SearchK(docs [][]string, ks []int, cfg Config) ([]KDiagnostic, error) {
	const (
		MSG1  = "k = %d: coherence %.3f, held-out %.4f"
		FAIL1 = "%w: no candidate topic counts"
		FAIL2 = "%w: candidate k = %d is out of range"
		FAIL3 = "k = %d: %w"
	)

	ks = gen.Unique(ks)
	sort.Ints(ks)
	if len(ks) == 0 {
		return nil, fmt.Errorf(FAIL1, str.ErrModelFit)
	}
	for _, k := range ks {
		if k < 1 || k > vv.LDAMAXTOPICS {
			return nil, fmt.Errorf(FAIL2, str.ErrModelFit, k)
		}
	}

	split, err := HeldOut(docs, cfg.HeldOutFrac, cfg.HeldOutProp, cfg.Seed)
	if err != nil {
		return nil, err
	}

	top := cfg.CoherenceTerms
	if top < 2 {
		top = vv.LDACOHERENCETOP
	}

	diag := make([]KDiagnostic, 0, len(ks))
	for _, k := range ks {
		c := cfg
		c.K = k

		full, e := Fit(docs, c)
		if e != nil {
			return nil, fmt.Errorf(FAIL3, k, e)
		}

		train, e := Fit(split.Train, c)
		if e != nil {
			return nil, fmt.Errorf(FAIL3, k, e)
		}

		ho, e := HeldOutLikelihood(train, split)
		if e != nil {
			return nil, fmt.Errorf(FAIL3, k, e)
		}

		kd := KDiagnostic{K: k, SemanticCoherence: SemanticCoherence(full, docs, top), HeldOutLikelihood: ho}
		Msg.FYI(fmt.Sprintf(MSG1, kd.K, kd.SemanticCoherence, kd.HeldOutLikelihood))
		diag = append(diag, kd)
	}
	return diag, nil
}
