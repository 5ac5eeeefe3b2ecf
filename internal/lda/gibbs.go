//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"golang.org/x/exp/rand"
)

// sampler - collapsed Gibbs state; z[d][n] is the topic currently assigned to token n of document d
type sampler struct {
	k, v  int
	alpha float64
	beta  float64
	docs  [][]int
	z     [][]int
	ndk   [][]int
	nkw   [][]int
	nk    []int
	rng   *rand.Rand
	p     []float64
}

// gibbsfit - returns phi (K x V) and theta (D x K); a given seed always yields the same answer
func gibbsfit(v int, docs [][]int, cfg Config) ([][]float64, [][]float64) {
	s := newsampler(cfg.K, v, docs, cfg)
	iter := cfg.Iterations
	if iter < 1 {
		iter = 1
	}
	for i := 0; i < iter; i++ {
		s.sweep()
	}
	return s.phi(), s.theta()
}

func newsampler(k int, v int, docs [][]int, cfg Config) *sampler {
	s := &sampler{
		k:     k,
		v:     v,
		alpha: cfg.Alpha,
		beta:  cfg.Beta,
		docs:  docs,
		z:     make([][]int, len(docs)),
		ndk:   make([][]int, len(docs)),
		nkw:   make([][]int, k),
		nk:    make([]int, k),
		rng:   rand.New(rand.NewSource(uint64(cfg.Seed))),
		p:     make([]float64, k),
	}
	if s.alpha <= 0 {
		s.alpha = 50 / float64(k)
	}
	if s.beta <= 0 {
		s.beta = 0.01
	}

	for t := 0; t < k; t++ {
		s.nkw[t] = make([]int, v)
	}

	for d, doc := range docs {
		s.z[d] = make([]int, len(doc))
		s.ndk[d] = make([]int, k)
		for n, w := range doc {
			t := s.rng.Intn(k)
			s.z[d][n] = t
			s.ndk[d][t]++
			s.nkw[t][w]++
			s.nk[t]++
		}
	}
	return s
}

// sweep - resample every token once
func (s *sampler) sweep() {
	vbeta := float64(s.v) * s.beta
	for d, doc := range s.docs {
		for n, w := range doc {
			t := s.z[d][n]
			s.ndk[d][t]--
			s.nkw[t][w]--
			s.nk[t]--

			var total float64
			for k := 0; k < s.k; k++ {
				total += (float64(s.ndk[d][k]) + s.alpha) * (float64(s.nkw[k][w]) + s.beta) / (float64(s.nk[k]) + vbeta)
				s.p[k] = total
			}

			u := s.rng.Float64() * total
			t = s.k - 1
			for k := 0; k < s.k; k++ {
				if u < s.p[k] {
					t = k
					break
				}
			}

			s.z[d][n] = t
			s.ndk[d][t]++
			s.nkw[t][w]++
			s.nk[t]++
		}
	}
}

func (s *sampler) phi() [][]float64 {
	vbeta := float64(s.v) * s.beta
	phi := make([][]float64, s.k)
	for k := 0; k < s.k; k++ {
		phi[k] = make([]float64, s.v)
		for w := 0; w < s.v; w++ {
			phi[k][w] = (float64(s.nkw[k][w]) + s.beta) / (float64(s.nk[k]) + vbeta)
		}
	}
	return phi
}

func (s *sampler) theta() [][]float64 {
	kalpha := float64(s.k) * s.alpha
	theta := make([][]float64, len(s.docs))
	for d := range s.docs {
		theta[d] = make([]float64, s.k)
		for k := 0; k < s.k; k++ {
			theta[d][k] = (float64(s.ndk[d][k]) + s.alpha) / (float64(len(s.docs[d])) + kalpha)
		}
		// guard against rounding drift
		normalize(theta[d])
	}
	return theta
}
