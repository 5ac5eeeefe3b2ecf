//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rpt

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/lda"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/sent"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/google/uuid"
	"sort"
	"time"
)

var (
	Msg   = mm.NewMessageMaker()
	ChtWd = vv.CHARTWIDTH
	ChtHt = vv.CHARTHEIGHT
)

// Summary - everything the report shows; built once from the stage outputs and never modified
type Summary struct {
	RunID            string                `json:"run_id"`
	Generated        time.Time             `json:"generated"`
	Verses           int                   `json:"verses"`
	Chapters         int                   `json:"chapters"`
	Sentiment        sent.Stats            `json:"sentiment"`
	ChapterSentiment []sent.ChapterScore   `json:"chapter_sentiment"`
	MostPositive     []VerseScore          `json:"most_positive"`
	MostNegative     []VerseScore          `json:"most_negative"`
	Topics           []TopicSummary        `json:"topics"`
	ChapterTopics    []ChapterTopics       `json:"chapter_topics"`
	TopTerms         []TermCount           `json:"top_terms"`
	ImageLabels      []str.ClassifierLabel `json:"image_labels,omitempty"`
}

type VerseScore struct {
	Locus   string  `json:"locus"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

// TopicSummary - IDs are 1-based here because people read them
type TopicSummary struct {
	ID        int              `json:"id"`
	Label     string           `json:"label"`
	Terms     []lda.TermWeight `json:"terms"`
	Documents int              `json:"documents"`
	Weight    float64          `json:"weight"`
	TopVerses []string         `json:"top_verses"`
}

// ChapterTopics - mean topic proportions over a chapter's modeled verses
type ChapterTopics struct {
	Chapter     int       `json:"chapter"`
	Proportions []float64 `json:"proportions"`
}

type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Inputs - the stage outputs; the three verse-level slices and Model.Docs share one order
type Inputs struct {
	Records        []str.VerseRecord
	Normalized     []str.NormalizedVerse
	Scores         []str.SentimentResult
	Model          lda.Model
	Labels         []str.ClassifierLabel
	ExcludeNoMatch bool
}

// Build - combine the sentiment and topic outputs into a Summary
func Build(in Inputs) (Summary, error) {
	const (
		FAIL = "%w: Build() was handed %d records, %d normalized verses, %d scores, and %d modeled documents"
	)

	n := len(in.Records)
	if len(in.Normalized) != n || len(in.Scores) != n || len(in.Model.Docs) != n {
		return Summary{}, fmt.Errorf(FAIL, str.ErrInvalidInput, n, len(in.Normalized), len(in.Scores), len(in.Model.Docs))
	}

	s := Summary{
		RunID:            uuid.New().String(),
		Generated:        time.Now(),
		Verses:           n,
		Sentiment:        sent.Describe(in.Scores, in.ExcludeNoMatch),
		ChapterSentiment: sent.ChapterMeans(in.Scores, in.ExcludeNoMatch),
		ImageLabels:      in.Labels,
	}
	s.Chapters = len(s.ChapterSentiment)

	s.MostPositive, s.MostNegative = extremes(in, vv.TOPVERSESHOWN)
	s.Topics = topicsummaries(in)
	s.ChapterTopics = chaptertopics(in)
	s.TopTerms = termcounts(in.Normalized, vv.TOPTERMSSHOWN)
	return s, nil
}

// extremes - the n highest and n lowest scoring verses among those the lexicon matched
func extremes(in Inputs, n int) ([]VerseScore, []VerseScore) {
	var vs []VerseScore
	for i, r := range in.Scores {
		if !r.Matched {
			continue
		}
		vs = append(vs, VerseScore{
			Locus:   in.Records[i].Locus(),
			Score:   r.Score,
			Snippet: gen.Snippet(in.Records[i].Text, vv.SNIPPETLENGTH),
		})
	}

	sort.SliceStable(vs, func(i, j int) bool { return vs[i].Score > vs[j].Score })
	var pos, neg []VerseScore
	for i := 0; i < len(vs) && i < n; i++ {
		if vs[i].Score > 0 {
			pos = append(pos, vs[i])
		}
	}
	for i := len(vs) - 1; i >= 0 && len(vs)-1-i < n; i-- {
		if vs[i].Score < 0 {
			neg = append(neg, vs[i])
		}
	}
	return pos, neg
}

func topicsummaries(in Inputs) []TopicSummary {
	m := in.Model
	per := lda.DocsPerTopic(m)
	wts := lda.TopicWeights(m)
	tops := lda.TopDocuments(m, vv.TOPVERSESHOWN)

	ts := make([]TopicSummary, m.K)
	for k := 0; k < m.K; k++ {
		ts[k] = TopicSummary{
			ID:        k + 1,
			Label:     lda.Label(m, k),
			Documents: per[k],
			Weight:    wts[k],
			TopVerses: []string{},
		}
		if k < len(m.Topics) {
			ts[k].Terms = m.Topics[k].Terms
		}
		for _, d := range tops[k] {
			ts[k].TopVerses = append(ts[k].TopVerses, in.Records[d].Locus())
		}
	}
	return ts
}

func chaptertopics(in Inputs) []ChapterTopics {
	k := in.Model.K
	sums := make(map[int][]float64)
	counts := make(map[int]int)

	for i, r := range in.Records {
		if _, ok := sums[r.Chapter]; !ok {
			sums[r.Chapter] = make([]float64, k)
		}
		dt := in.Model.Docs[i]
		if dt.Excluded {
			continue
		}
		for t, p := range dt.Proportions {
			sums[r.Chapter][t] += p
		}
		counts[r.Chapter]++
	}

	var ct []ChapterTopics
	for _, c := range gen.SortedKeys(sums) {
		pp := sums[c]
		for t := range pp {
			if counts[c] == 0 {
				pp[t] = 1 / float64(k)
			} else {
				pp[t] /= float64(counts[c])
			}
		}
		ct = append(ct, ChapterTopics{Chapter: c, Proportions: pp})
	}
	return ct
}

// termcounts - the n commonest tokens in the corpus; ties go alphabetically
func termcounts(nvs []str.NormalizedVerse, n int) []TermCount {
	counts := make(map[string]int)
	for _, v := range nvs {
		for _, t := range v.Tokens {
			counts[t]++
		}
	}

	tc := make([]TermCount, 0, len(counts))
	for _, t := range gen.SortedKeys(counts) {
		tc = append(tc, TermCount{Term: t, Count: counts[t]})
	}
	sort.SliceStable(tc, func(i, j int) bool { return tc[i].Count > tc[j].Count })

	if len(tc) > n {
		tc = tc[:n]
	}
	return tc
}
