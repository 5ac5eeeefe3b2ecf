//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
)

const (
	GIBBS       = "gibbs"
	VARIATIONAL = "variational"
)

var (
	Msg = mm.NewMessageMaker()
)

// Config - everything that shapes a fit; two fits with equal Config and equal input agree when Engine is GIBBS
type Config struct {
	K              int
	Seed           int64
	Iterations     int
	Alpha          float64
	Beta           float64
	MinDocFreq     int
	TopN           int
	Engine         string
	SearchKs       []int
	HeldOutFrac    float64
	HeldOutProp    float64
	CoherenceTerms int
}

func DefaultConfig() Config {
	return Config{
		K:              vv.LDATOPICS,
		Seed:           vv.LDASEED,
		Iterations:     vv.LDAITER,
		Alpha:          vv.LDAALPHA,
		Beta:           vv.LDABETA,
		MinDocFreq:     vv.LDAMINDOCFREQ,
		TopN:           vv.LDATOPN,
		Engine:         vv.LDAENGINE,
		SearchKs:       append([]int{}, vv.LDASEARCHKS...),
		HeldOutFrac:    vv.LDAHELDOUTFRAC,
		HeldOutProp:    vv.LDAHELDOUTPROP,
		CoherenceTerms: vv.LDACOHERENCETOP,
	}
}

func ConfigFrom(tc str.TopicConfig) Config {
	c := Config{
		K:              tc.K,
		Seed:           tc.Seed,
		Iterations:     tc.Iterations,
		Alpha:          tc.Alpha,
		Beta:           tc.Beta,
		MinDocFreq:     tc.MinDocFreq,
		TopN:           tc.TopN,
		Engine:         tc.Engine,
		SearchKs:       append([]int{}, tc.SearchKs...),
		HeldOutFrac:    tc.HeldOutFrac,
		HeldOutProp:    tc.HeldOutProp,
		CoherenceTerms: tc.CoherenceTerms,
	}
	if c.Engine == "" {
		c.Engine = GIBBS
	}
	if len(c.SearchKs) == 0 {
		c.SearchKs = append([]int{}, vv.LDASEARCHKS...)
	}
	return c
}
