//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sent

import (
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"math"
)

// Stats - corpus level description of the verse scores
type Stats struct {
	N              int
	Matched        int
	Mean           float64
	Min            float64
	Max            float64
	SD             float64
	ExcludeNoMatch bool
}

// ChapterScore - mean sentiment for one chapter
type ChapterScore struct {
	Chapter int
	Verses  int
	Mean    float64
}

// scores - the verse scores that count toward a mean
func scores(rr []str.SentimentResult, excludeNoMatch bool) []float64 {
	ff := make([]float64, 0, len(rr))
	for _, r := range rr {
		if excludeNoMatch && !r.Matched {
			continue
		}
		ff = append(ff, r.Score)
	}
	return ff
}

// CorpusMean - arithmetic mean of the verse scores; unmatched verses count as 0 unless excluded
func CorpusMean(rr []str.SentimentResult, excludeNoMatch bool) float64 {
	ff := scores(rr, excludeNoMatch)
	if len(ff) == 0 {
		return 0
	}
	return stat.Mean(ff, nil)
}

// Describe - mean, range and spread
func Describe(rr []str.SentimentResult, excludeNoMatch bool) Stats {
	st := Stats{N: len(rr), ExcludeNoMatch: excludeNoMatch}
	for _, r := range rr {
		if r.Matched {
			st.Matched++
		}
	}

	ff := scores(rr, excludeNoMatch)
	if len(ff) == 0 {
		return st
	}

	st.Mean = stat.Mean(ff, nil)
	st.Min = floats.Min(ff)
	st.Max = floats.Max(ff)
	if len(ff) > 1 {
		st.SD = stat.StdDev(ff, nil)
	}
	if math.IsNaN(st.SD) {
		st.SD = 0
	}
	return st
}

// ChapterMeans - per chapter means in chapter order
func ChapterMeans(rr []str.SentimentResult, excludeNoMatch bool) []ChapterScore {
	bych := make(map[int][]str.SentimentResult)
	for _, r := range rr {
		bych[r.Chapter] = append(bych[r.Chapter], r)
	}

	var out []ChapterScore
	for _, ch := range gen.SortedKeys(bych) {
		out = append(out, ChapterScore{
			Chapter: ch,
			Verses:  len(bych[ch]),
			Mean:    CorpusMean(bych[ch], excludeNoMatch),
		})
	}
	return out
}
