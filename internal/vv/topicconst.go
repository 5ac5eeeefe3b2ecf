//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	LDATOPICS       = 5
	LDAMAXTOPICS    = 50
	LDASEED         = 1
	LDAITER         = 500
	LDAXFORMPASSES  = 100
	LDAALPHA        = 0.1
	LDABETA         = 0.01
	LDAMINDOCFREQ   = 2
	LDATOPN         = 8
	LDAENGINE       = "gibbs" // "gibbs" or "variational"
	LDAHELDOUTFRAC  = 0.1
	LDAHELDOUTPROP  = 0.5
	LDACOHERENCETOP = 10
	LDALABELTERMS   = 3
)

var (
	// LDASEARCHKS - the default sweep of candidate topic counts
	LDASEARCHKS = []int{3, 4, 5, 10, 20}
)

const (
	SENTNEGBEFORE   = 4
	SENTNEGAFTER    = 2
	SENTAMPWEIGHT   = 0.8
	SENTDEAMPWEIGHT = 0.5
	SENTLENGTHNORM  = true
	SENTEXCLNOMATCH = false
)
