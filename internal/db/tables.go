//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/lda"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var Msg = mm.NewMessageMaker()

var (
	RawHeader       = []string{"chapter", "verse", "verses"}
	CleanHeader     = []string{"chapter", "verse", "verses", "tokens"}
	SentimentHeader = []string{"chapter", "verse", "score", "matched"}
	TopicHeader     = []string{"topic", "rank", "term", "weight"}
	KSweepHeader    = []string{"k", "coherence", "heldout"}
)

const (
	sentencesep = ". "
)

//
// WRITERS
//

// WriteRaw - the loader's output, one row per verse
func WriteRaw(fn string, recs []str.VerseRecord) error {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{strconv.Itoa(r.Chapter), strconv.Itoa(r.Verse), r.Text}
	}
	return writetable(fn, RawHeader, rows)
}

// WriteClean - cleaned text plus the space-joined token stream
func WriteClean(fn string, nvs []str.NormalizedVerse) error {
	rows := make([][]string, len(nvs))
	for i, v := range nvs {
		rows[i] = []string{strconv.Itoa(v.Chapter), strconv.Itoa(v.Verse), v.Cleaned, strings.Join(v.Tokens, " ")}
	}
	return writetable(fn, CleanHeader, rows)
}

func WriteSentiment(fn string, rr []str.SentimentResult) error {
	rows := make([][]string, len(rr))
	for i, r := range rr {
		rows[i] = []string{strconv.Itoa(r.Chapter), strconv.Itoa(r.Verse), ftoa(r.Score), strconv.FormatBool(r.Matched)}
	}
	return writetable(fn, SentimentHeader, rows)
}

// WriteDocTopics - one row per verse; the model's documents must be in the same order as nvs
func WriteDocTopics(fn string, nvs []str.NormalizedVerse, m lda.Model) error {
	const (
		FAIL = "WriteDocTopics(): %d verses but %d modeled documents"
	)
	if len(nvs) != len(m.Docs) {
		return fmt.Errorf(FAIL, len(nvs), len(m.Docs))
	}

	header := []string{"chapter", "verse"}
	for k := 1; k <= m.K; k++ {
		header = append(header, fmt.Sprintf("topic_%d", k))
	}
	header = append(header, "excluded")

	rows := make([][]string, len(nvs))
	for i, v := range nvs {
		row := []string{strconv.Itoa(v.Chapter), strconv.Itoa(v.Verse)}
		for _, p := range m.Docs[i].Proportions {
			row = append(row, ftoa(p))
		}
		rows[i] = append(row, strconv.FormatBool(m.Docs[i].Excluded))
	}
	return writetable(fn, header, rows)
}

// WriteTopics - topics and ranks are 1-based in the table
func WriteTopics(fn string, m lda.Model) error {
	var rows [][]string
	for _, t := range m.Topics {
		for r, tw := range t.Terms {
			rows = append(rows, []string{strconv.Itoa(t.ID + 1), strconv.Itoa(r + 1), tw.Term, ftoa(tw.Weight)})
		}
	}
	return writetable(fn, TopicHeader, rows)
}

func WriteKSweep(fn string, kd []lda.KDiagnostic) error {
	rows := make([][]string, len(kd))
	for i, d := range kd {
		rows[i] = []string{strconv.Itoa(d.K), ftoa(d.SemanticCoherence), ftoa(d.HeldOutLikelihood)}
	}
	return writetable(fn, KSweepHeader, rows)
}

func writetable(fn string, header []string, rows [][]string) error {
	const (
		MSG1 = "wrote %d rows to %s"
		FAIL = "writetable() could not write %s: %w"
	)

	if err := os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}

	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	if err = w.WriteAll(rows); err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	Msg.TMI(fmt.Sprintf(MSG1, len(rows), fn))
	return f.Close()
}

//
// READERS
//

// ReadRaw - the inverse of WriteRaw
func ReadRaw(fn string) ([]str.VerseRecord, error) {
	rows, err := readtable(fn, RawHeader)
	if err != nil {
		return nil, err
	}

	recs := make([]str.VerseRecord, len(rows))
	for i, r := range rows {
		if recs[i].Chapter, recs[i].Verse, err = locus(fn, i, r); err != nil {
			return nil, err
		}
		recs[i].Text = r[2]
	}
	return recs, nil
}

// ReadClean - the inverse of WriteClean; sentences are recovered from the cleaned text
func ReadClean(fn string) ([]str.NormalizedVerse, error) {
	rows, err := readtable(fn, CleanHeader)
	if err != nil {
		return nil, err
	}

	nvs := make([]str.NormalizedVerse, len(rows))
	for i, r := range rows {
		if nvs[i].Chapter, nvs[i].Verse, err = locus(fn, i, r); err != nil {
			return nil, err
		}
		nvs[i].Cleaned = r[2]
		nvs[i].Sentences = []string{}
		if r[2] != "" {
			nvs[i].Sentences = strings.Split(r[2], sentencesep)
		}
		nvs[i].Tokens = strings.Fields(r[3])
		if nvs[i].Tokens == nil {
			nvs[i].Tokens = []string{}
		}
	}
	return nvs, nil
}

//
// STAMPS
//

const (
	stampsuffix = ".md5"
)

// WriteStamp - record next to fn the fingerprint of the settings that produced it
func WriteStamp(fn string, fp string) error {
	return os.WriteFile(fn+stampsuffix, []byte(fp+"\n"), vv.WRITEPERMS)
}

// StampMatches - true only if fn carries a stamp and the stamp is fp
func StampMatches(fn string, fp string) bool {
	b, err := os.ReadFile(fn + stampsuffix)
	return err == nil && strings.TrimSpace(string(b)) == fp
}

func readtable(fn string, header []string) ([][]string, error) {
	const (
		FAIL1 = "readtable() could not read %s: %w"
		FAIL2 = "%w: %s has header %v; expected %v"
	)

	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, fn, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf(FAIL1, fn, errors.Join(str.ErrInvalidInput, err))
	}
	if len(all) == 0 || strings.Join(all[0], ",") != strings.Join(header, ",") {
		var got []string
		if len(all) > 0 {
			got = all[0]
		}
		return nil, fmt.Errorf(FAIL2, str.ErrInvalidInput, fn, got, header)
	}
	return all[1:], nil
}

func locus(fn string, i int, r []string) (int, int, error) {
	const (
		FAIL = "%w: %s row %d has a bad locus '%s.%s'"
	)
	ch, e1 := strconv.Atoi(r[0])
	vs, e2 := strconv.Atoi(r[1])
	if e1 != nil || e2 != nil {
		return 0, 0, fmt.Errorf(FAIL, str.ErrInvalidInput, fn, i+2, r[0], r[1])
	}
	return ch, vs, nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
