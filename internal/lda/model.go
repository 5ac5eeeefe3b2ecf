//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"gonum.org/v1/gonum/mat"
	"math"
	"sort"
)

// TermWeight - one of a topic's top terms
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

type Topic struct {
	ID    int          `json:"id"`
	Terms []TermWeight `json:"terms"`
}

// DocumentTopics - Proportions[k] is the share of topic k in document Doc; the slice always sums to 1
type DocumentTopics struct {
	Doc         int       `json:"doc"`
	Proportions []float64 `json:"proportions"`
	Excluded    bool      `json:"excluded"`
}

// Model - a fitted topic model; never updated after Fit returns
type Model struct {
	K      int              `json:"k"`
	Engine string           `json:"engine"`
	Vocab  []string         `json:"vocab"`
	Topics []Topic          `json:"topics"`
	Docs   []DocumentTopics `json:"docs"`
	Phi    [][]float64      `json:"phi"`
}

// Fit - build the vocabulary, fit k topics, and report terms per topic and topics per document
func Fit(docs [][]string, cfg Config) (Model, error) {
	const (
		FAIL1 = "%w: k must be positive (got %d)"
		FAIL2 = "%w: empty corpus"
		FAIL3 = "%w: no term occurs in %d or more documents"
	)

	if cfg.K < 1 {
		return Model{}, fmt.Errorf(FAIL1, str.ErrModelFit, cfg.K)
	}
	if len(docs) == 0 {
		return Model{}, fmt.Errorf(FAIL2, str.ErrModelFit)
	}

	vocab := BuildVocabulary(docs, cfg.MinDocFreq)
	if vocab.Len() == 0 {
		return Model{}, fmt.Errorf(FAIL3, str.ErrModelFit, cfg.MinDocFreq)
	}

	ids, excluded := vocab.Encode(docs)
	return fitencoded(vocab, ids, excluded, cfg)
}

// fitencoded - run the chosen engine over the non-excluded documents and assemble the Model
func fitencoded(vocab Vocabulary, ids [][]int, excluded []int, cfg Config) (Model, error) {
	const (
		MSG1  = "fitting %d topics over %d documents and %d terms with the %s engine (%d excluded)"
		FAIL1 = "%w: every document is empty after pruning"
		FAIL2 = "%w: unknown engine '%s'"
		FAIL3 = "%w: non-finite proportion for document %d"
	)

	skip := make(map[int]struct{}, len(excluded))
	for _, e := range excluded {
		skip[e] = struct{}{}
	}

	var active []int
	for i := range ids {
		if _, ok := skip[i]; !ok {
			active = append(active, i)
		}
	}
	if len(active) == 0 {
		return Model{}, fmt.Errorf(FAIL1, str.ErrModelFit)
	}

	Msg.PEEK(fmt.Sprintf(MSG1, cfg.K, len(active), vocab.Len(), cfg.Engine, len(excluded)))

	var phi, theta [][]float64
	var err error

	switch cfg.Engine {
	case GIBBS, "":
		phi, theta = gibbsfit(vocab.Len(), pick(ids, active), cfg)
	case VARIATIONAL:
		phi, theta, err = variationalfit(vocab, pick(ids, active), cfg)
		if err != nil {
			return Model{}, err
		}
	default:
		return Model{}, fmt.Errorf(FAIL2, str.ErrModelFit, cfg.Engine)
	}

	m := Model{
		K:      cfg.K,
		Engine: cfg.Engine,
		Vocab:  vocab.Terms,
		Phi:    phi,
		Docs:   make([]DocumentTopics, len(ids)),
	}
	if m.Engine == "" {
		m.Engine = GIBBS
	}

	for i := range ids {
		m.Docs[i] = DocumentTopics{Doc: i, Proportions: uniform(cfg.K), Excluded: true}
	}
	for j, d := range active {
		if !finite(theta[j]) {
			return Model{}, fmt.Errorf(FAIL3, str.ErrModelFit, d)
		}
		m.Docs[d] = DocumentTopics{Doc: d, Proportions: theta[j]}
	}
	for k := range phi {
		if !finite(phi[k]) {
			return Model{}, fmt.Errorf(FAIL3, str.ErrModelFit, -1)
		}
	}

	m.Topics = sortedtopics(m, cfg.TopN)
	return m, nil
}

// sortedtopics - the most significant words for each topic; ties fall back to vocabulary order
func sortedtopics(m Model, topn int) []Topic {
	if topn < 1 || topn > len(m.Vocab) {
		topn = len(m.Vocab)
	}

	tops := make([]Topic, m.K)
	for k := 0; k < m.K; k++ {
		order := make([]int, len(m.Vocab))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return m.Phi[k][order[i]] > m.Phi[k][order[j]]
		})

		tt := make([]TermWeight, topn)
		for i := 0; i < topn; i++ {
			tt[i] = TermWeight{Term: m.Vocab[order[i]], Weight: m.Phi[k][order[i]]}
		}
		tops[k] = Topic{ID: k, Terms: tt}
	}
	return tops
}

// PhiMatrix - topics over words (K x V)
func (m Model) PhiMatrix() *mat.Dense {
	d := mat.NewDense(m.K, len(m.Vocab), nil)
	for k := range m.Phi {
		d.SetRow(k, m.Phi[k])
	}
	return d
}

// ThetaMatrix - documents over topics, laid out topic-major (K x D) like nlp's FitTransform output
func (m Model) ThetaMatrix() *mat.Dense {
	d := mat.NewDense(m.K, len(m.Docs), nil)
	for j, dt := range m.Docs {
		d.SetCol(j, dt.Proportions)
	}
	return d
}

// Terms - the top terms of topic k, best first
func (m Model) Terms(k int) []string {
	if k < 0 || k >= len(m.Topics) {
		return nil
	}
	tt := make([]string, len(m.Topics[k].Terms))
	for i, t := range m.Topics[k].Terms {
		tt[i] = t.Term
	}
	return tt
}

func pick(ids [][]int, which []int) [][]int {
	out := make([][]int, len(which))
	for i, w := range which {
		out[i] = ids[w]
	}
	return out
}

func uniform(k int) []float64 {
	u := make([]float64, k)
	for i := range u {
		u[i] = 1 / float64(k)
	}
	return u
}

func finite(ff []float64) bool {
	for _, f := range ff {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// normalize - scale to sum 1 in place; an all-zero row becomes uniform
func normalize(ff []float64) []float64 {
	var sum float64
	for _, f := range ff {
		sum += f
	}
	if sum <= 0 {
		copy(ff, uniform(len(ff)))
		return ff
	}
	for i := range ff {
		ff[i] /= sum
	}
	return ff
}
