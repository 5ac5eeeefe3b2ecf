//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rpt

import (
	"encoding/json"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/lda"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteJSON - the whole Summary, indented
func WriteJSON(fn string, s Summary) error {
	const (
		FAIL = "WriteJSON() could not write %s: %w"
	)
	b, err := json.MarshalIndent(s, "", vv.JSONINDENT)
	if err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	if err = os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	if err = os.WriteFile(fn, b, vv.WRITEPERMS); err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	return nil
}

// ReadJSON - a previously written Summary
func ReadJSON(fn string) (Summary, error) {
	var s Summary
	b, err := os.ReadFile(fn)
	if err != nil {
		return s, err
	}
	err = json.Unmarshal(b, &s)
	return s, err
}

// RenderTables - the terminal version of the report
func RenderTables(w io.Writer, s Summary) {
	p := message.NewPrinter(language.English)

	newtable := func(title string, header table.Row) table.Writer {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(title)
		t.AppendHeader(header)
		t.SetStyle(table.StyleRounded)
		return t
	}

	t := newtable("Corpus sentiment", table.Row{"Verses", "Matched", "Mean", "SD", "Min", "Max"})
	st := s.Sentiment
	t.AppendRow(table.Row{p.Sprintf("%d", st.N), p.Sprintf("%d", st.Matched), p.Sprintf("%.4f", st.Mean),
		p.Sprintf("%.4f", st.SD), p.Sprintf("%.4f", st.Min), p.Sprintf("%.4f", st.Max)})
	t.Render()

	t = newtable("Sentiment by chapter", table.Row{"Chapter", "Verses", "Mean"})
	for _, c := range s.ChapterSentiment {
		t.AppendRow(table.Row{c.Chapter, p.Sprintf("%d", c.Verses), p.Sprintf("%.4f", c.Mean)})
	}
	t.Render()

	t = newtable("Extremes", table.Row{"", "Locus", "Score", "Verse"})
	for _, v := range s.MostPositive {
		t.AppendRow(table.Row{"+", v.Locus, p.Sprintf("%.4f", v.Score), v.Snippet})
	}
	for _, v := range s.MostNegative {
		t.AppendRow(table.Row{"-", v.Locus, p.Sprintf("%.4f", v.Score), v.Snippet})
	}
	t.Render()

	t = newtable("Topics", table.Row{"Topic", "Label", "Verses", "Weight", "Top terms", "Exemplary verses"})
	for _, tp := range s.Topics {
		terms := make([]string, len(tp.Terms))
		for i, tw := range tp.Terms {
			terms[i] = tw.Term
		}
		t.AppendRow(table.Row{tp.ID, tp.Label, p.Sprintf("%d", tp.Documents), p.Sprintf("%.3f", tp.Weight),
			strings.Join(terms, vv.SUMMARYTERMSEP), strings.Join(tp.TopVerses, vv.SUMMARYTERMSEP)})
	}
	t.Render()

	t = newtable("Commonest terms", table.Row{"Term", "Count"})
	for _, tc := range s.TopTerms {
		t.AppendRow(table.Row{tc.Term, p.Sprintf("%d", tc.Count)})
	}
	t.Render()

	if len(s.ImageLabels) > 0 {
		t = newtable("Image labels", table.Row{"Label", "Confidence"})
		for _, l := range s.ImageLabels {
			t.AppendRow(table.Row{l.Label, p.Sprintf("%.3f", l.Confidence)})
		}
		t.Render()
	}
}

// RenderKSweep - the model-selection numbers as a terminal table
func RenderKSweep(w io.Writer, kd []lda.KDiagnostic) {
	p := message.NewPrinter(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Choosing k")
	t.AppendHeader(table.Row{"k", "Semantic coherence", "Held-out likelihood"})
	for _, d := range kd {
		t.AppendRow(table.Row{d.K, p.Sprintf("%.3f", d.SemanticCoherence), p.Sprintf("%.4f", d.HeldOutLikelihood)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
