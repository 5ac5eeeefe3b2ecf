//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"context"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"strings"
)

var Msg = mm.NewMessageMaker()

// Source - anything that can hand over the raw text fragments of a chapter in reading order
type Source interface {
	FetchChapter(ctx context.Context, chapter int) ([]string, error)
}

// StaticSource - chapters already in memory
type StaticSource map[int][]string

func (s StaticSource) FetchChapter(ctx context.Context, chapter int) ([]string, error) {
	const (
		FAIL = "%w: chapter %d is not in the static source"
	)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", str.ErrSourceUnavailable, err)
	}
	ff, ok := s[chapter]
	if !ok {
		return nil, fmt.Errorf(FAIL, str.ErrSourceUnavailable, chapter)
	}
	return append([]string{}, ff...), nil
}

// StaticFromRecords - rebuild a source from stored verse records
func StaticFromRecords(recs []str.VerseRecord) StaticSource {
	s := make(StaticSource)
	for _, r := range recs {
		s[r.Chapter] = append(s[r.Chapter], r.Text)
	}
	return s
}

// LoadCorpus - fetch chapters 1..n in order and number the surviving fragments; a single missing chapter
// fails the whole load
func LoadCorpus(ctx context.Context, src Source, chapters int, boilerplate []string) ([]str.VerseRecord, error) {
	const (
		MSG1  = "chapter %d: kept %d of %d fragments"
		MSG2  = "loaded %d verses from %d chapters"
		FAIL1 = "%w: at least one chapter is required"
		FAIL2 = "LoadCorpus() aborted at chapter %d: %w"
	)

	if chapters < 1 {
		return nil, fmt.Errorf(FAIL1, str.ErrInvalidInput)
	}

	skip := make(map[string]struct{}, len(boilerplate))
	for _, b := range boilerplate {
		skip[strings.ToLower(strings.TrimSpace(b))] = struct{}{}
	}

	var recs []str.VerseRecord
	for c := 1; c <= chapters; c++ {
		ff, err := src.FetchChapter(ctx, c)
		if err != nil {
			return nil, fmt.Errorf(FAIL2, c, err)
		}

		verse := 0
		for _, f := range ff {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if _, bp := skip[strings.ToLower(f)]; bp {
				continue
			}
			verse++
			recs = append(recs, str.VerseRecord{Chapter: c, Verse: verse, Text: f})
		}
		Msg.PEEK(fmt.Sprintf(MSG1, c, verse, len(ff)))
	}

	Msg.FYI(fmt.Sprintf(MSG2, len(recs), chapters))
	return recs, nil
}

// Chapters - the distinct chapter numbers present, ascending
func Chapters(recs []str.VerseRecord) []int {
	seen := make(map[int]struct{})
	for _, r := range recs {
		seen[r.Chapter] = struct{}{}
	}
	return gen.SortedKeys(seen)
}
