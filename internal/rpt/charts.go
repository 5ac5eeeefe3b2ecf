//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rpt

import (
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/lda"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// WriteHTML - chapter sentiment, topic weight, and chapter-by-topic charts on one page
func WriteHTML(fn string, s Summary) error {
	const (
		PAGETITLE = "%s report %s"
	)

	p := components.NewPage()
	p.PageTitle = fmt.Sprintf(PAGETITLE, vv.MYNAME, s.RunID)
	p.SetLayout(components.PageFlexLayout)
	p.AddCharts(chaptersentimentbar(s), topicweightbar(s), chaptertopicbar(s))
	return renderpage(fn, p)
}

// WriteKSweepHTML - coherence and held-out likelihood against k, plus the trade-off between them
func WriteKSweepHTML(fn string, kd []lda.KDiagnostic) error {
	const (
		PAGETITLE = "%s: choosing the number of topics"
	)

	ks := make([]string, len(kd))
	coh := make([]opts.LineData, len(kd))
	ho := make([]opts.LineData, len(kd))
	sc := make([]opts.ScatterData, len(kd))
	for i, d := range kd {
		ks[i] = strconv.Itoa(d.K)
		coh[i] = opts.LineData{Value: round(d.SemanticCoherence)}
		ho[i] = opts.LineData{Value: round(d.HeldOutLikelihood)}
		sc[i] = opts.ScatterData{Name: "k=" + ks[i], Value: []interface{}{round(d.SemanticCoherence), round(d.HeldOutLikelihood)}}
	}

	cl := charts.NewLine()
	cl.SetGlobalOptions(basicopts("Semantic coherence", "higher is more coherent")...)
	cl.SetXAxis(ks).AddSeries("coherence", coh)

	hl := charts.NewLine()
	hl.SetGlobalOptions(basicopts("Held-out likelihood", "mean log-likelihood per withheld token")...)
	hl.SetXAxis(ks).AddSeries("held-out", ho)

	tr := charts.NewScatter()
	tr.SetGlobalOptions(append(basicopts("Trade-off", "each point is one k"),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "coherence", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "held-out", Scale: true}))...)
	tr.AddSeries("k", sc, charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}"}))

	p := components.NewPage()
	p.PageTitle = fmt.Sprintf(PAGETITLE, vv.MYNAME)
	p.SetLayout(components.PageFlexLayout)
	p.AddCharts(cl, hl, tr)
	return renderpage(fn, p)
}

func chaptersentimentbar(s Summary) *charts.Bar {
	x := make([]string, len(s.ChapterSentiment))
	y := make([]opts.BarData, len(s.ChapterSentiment))
	for i, c := range s.ChapterSentiment {
		x[i] = strconv.Itoa(c.Chapter)
		y[i] = opts.BarData{Value: round(c.Mean)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(basicopts("Mean sentiment by chapter",
		fmt.Sprintf("corpus mean %.4f over %d verses", s.Sentiment.Mean, s.Verses))...)
	bar.SetXAxis(x).AddSeries("sentiment", y)
	return bar
}

func topicweightbar(s Summary) *charts.Bar {
	x := make([]string, len(s.Topics))
	y := make([]opts.BarData, len(s.Topics))
	for i, t := range s.Topics {
		x[i] = fmt.Sprintf("%d: %s", t.ID, t.Label)
		y[i] = opts.BarData{Value: round(t.Weight)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(basicopts("Topic weight", "accumulated proportion, scaled to the heaviest topic")...)
	bar.SetXAxis(x).AddSeries("weight", y)
	return bar
}

func chaptertopicbar(s Summary) *charts.Bar {
	x := make([]string, len(s.ChapterTopics))
	for i, c := range s.ChapterTopics {
		x[i] = strconv.Itoa(c.Chapter)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(basicopts("Topics by chapter", "mean topic proportions of each chapter's verses")...)
	bar.SetXAxis(x)
	for k, t := range s.Topics {
		y := make([]opts.BarData, len(s.ChapterTopics))
		for i, c := range s.ChapterTopics {
			y[i] = opts.BarData{Value: round(c.Proportions[k])}
		}
		bar.AddSeries(fmt.Sprintf("%d: %s", t.ID, t.Label), y, charts.WithBarChartOpts(opts.BarChart{Stack: "topics"}))
	}
	return bar
}

// basicopts - size, title, tooltip, legend, and a save button
func basicopts(title string, subtitle string) []charts.GlobalOpts {
	const (
		SAVETYPE = "svg"
		SAVESTR  = "Save to file..."
		LEFT     = "20"
	)

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  title,
		Title: SAVESTR, // get chinese if ""
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: ChtWd, Height: ChtHt}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle, Left: LEFT}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
		charts.WithToolboxOpts(opts.Toolbox{Show: true, Orient: "vertical", Right: LEFT,
			Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs}}),
	}
}

func renderpage(fn string, p *components.Page) error {
	const (
		FAIL = "could not render %s: %w"
	)
	if err := os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	defer f.Close()
	if err = p.Render(f); err != nil {
		return fmt.Errorf(FAIL, fn, err)
	}
	return f.Close()
}

// round - four places are plenty for a chart tooltip
func round(f float64) float64 {
	return math.Round(f*10000) / 10000
}
