//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package pipe

import (
	"context"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/db"
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/lda"
	"github.com/e-gun/VerseAnalytics/internal/lnch"
	"github.com/e-gun/VerseAnalytics/internal/load"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/prep"
	"github.com/e-gun/VerseAnalytics/internal/rpt"
	"github.com/e-gun/VerseAnalytics/internal/sent"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"go.uber.org/zap"
	"path/filepath"
	"time"
)

var Msg = mm.NewMessageMaker()

const (
	kindclean = "clean"
)

// Configure - hand every package a MessageMaker built from the configuration and apply the chart size
func Configure(cfg *str.CurrentConfiguration) {
	m := lnch.NewMessageMakerConfigured(cfg)
	Msg, lnch.Msg, load.Msg, prep.Msg, sent.Msg, lda.Msg, db.Msg, rpt.Msg = m, m, m, m, m, m, m, m

	if cfg.ChtWd != "" {
		rpt.ChtWd = cfg.ChtWd
	}
	if cfg.ChtHt != "" {
		rpt.ChtHt = cfg.ChtHt
	}
}

// Run - load, normalize, score, fit, aggregate; every stage writes its table to the output directory
func Run(ctx context.Context, cfg *str.CurrentConfiguration, src load.Source) (rpt.Summary, error) {
	const (
		MSG1 = "scored %d verses (corpus mean %.4f)"
		MSG2 = "fitted %d topics"
		MSG3 = "report written to %s"
		MSG4 = "could not read the image labels: %s"
	)

	start := time.Now()
	previous := start

	vault := openvault(cfg)
	defer vault.Close()

	recs, nvs, err := prepare(ctx, cfg, src, vault, start, &previous)
	if err != nil {
		return rpt.Summary{}, err
	}

	// [3] sentiment

	lex := sent.DefaultLexicon()
	if cfg.Sentiment.LexiconFile != "" {
		if lex, err = sent.LoadLexicon(cfg.Sentiment.LexiconFile); err != nil {
			return rpt.Summary{}, err
		}
	}
	scores := sent.NewScorer(lex, sent.ConfigFrom(cfg.Sentiment)).ScoreCorpus(nvs)
	if err = db.WriteSentiment(outfile(cfg, vv.SENTTABLE), scores); err != nil {
		return rpt.Summary{}, err
	}
	Msg.Timer("A3", fmt.Sprintf(MSG1, len(scores), sent.CorpusMean(scores, cfg.Sentiment.ExcludeNoMatch)), start, previous)
	previous = time.Now()

	if err = ctx.Err(); err != nil {
		return rpt.Summary{}, err
	}

	// [4] topics

	model, err := fit(tokens(nvs), lda.ConfigFrom(cfg.Topics), vault)
	if err != nil {
		return rpt.Summary{}, err
	}
	if err = db.WriteDocTopics(outfile(cfg, vv.DOCTOPICTABLE), nvs, model); err != nil {
		return rpt.Summary{}, err
	}
	if err = db.WriteTopics(outfile(cfg, vv.TOPICTABLE), model); err != nil {
		return rpt.Summary{}, err
	}
	Msg.Timer("A4", fmt.Sprintf(MSG2, model.K), start, previous)
	previous = time.Now()

	// [5] report

	var labels []str.ClassifierLabel
	if cfg.LabelsFile != "" {
		if labels, err = rpt.LoadClassifierLabels(cfg.LabelsFile); err != nil {
			Msg.WARN(fmt.Sprintf(MSG4, err.Error()))
		}
	}

	summary, err := rpt.Build(rpt.Inputs{
		Records:        recs,
		Normalized:     nvs,
		Scores:         scores,
		Model:          model,
		Labels:         labels,
		ExcludeNoMatch: cfg.Sentiment.ExcludeNoMatch,
	})
	if err != nil {
		return rpt.Summary{}, err
	}
	if err = rpt.WriteJSON(outfile(cfg, vv.REPORTJSON), summary); err != nil {
		return rpt.Summary{}, err
	}
	if err = rpt.WriteHTML(outfile(cfg, vv.REPORTHTML), summary); err != nil {
		return rpt.Summary{}, err
	}
	Msg.Timer("A5", fmt.Sprintf(MSG3, cfg.OutputDir), start, previous)

	return summary, nil
}

// SweepK - load and normalize, then score each candidate topic count; the human picks k from ksweep.html
func SweepK(ctx context.Context, cfg *str.CurrentConfiguration, src load.Source) ([]lda.KDiagnostic, error) {
	const (
		MSG1 = "evaluated %d candidate topic counts"
	)

	start := time.Now()
	previous := start

	vault := openvault(cfg)
	defer vault.Close()

	_, nvs, err := prepare(ctx, cfg, src, vault, start, &previous)
	if err != nil {
		return nil, err
	}

	tc := lda.ConfigFrom(cfg.Topics)
	kd, err := lda.SearchK(tokens(nvs), tc.SearchKs, tc)
	if err != nil {
		return nil, err
	}

	if err = db.WriteKSweep(outfile(cfg, vv.KSWEEPTABLE), kd); err != nil {
		return nil, err
	}
	if err = rpt.WriteKSweepHTML(outfile(cfg, vv.KSWEEPHTML), kd); err != nil {
		return nil, err
	}
	Msg.Timer("K1", fmt.Sprintf(MSG1, len(kd)), start, previous)
	return kd, nil
}

// prepare - stages [1] and [2]: the corpus and its normalized form
func prepare(ctx context.Context, cfg *str.CurrentConfiguration, src load.Source, vault db.Vault, start time.Time, previous *time.Time) ([]str.VerseRecord, []str.NormalizedVerse, error) {
	const (
		MSG1 = "loaded %d verses"
		MSG2 = "normalized %d verses"
		MSG3 = "reusing %s"
	)

	recs, err := corpus(ctx, cfg, src, vault)
	if err != nil {
		return nil, nil, err
	}
	Msg.Timer("A1", fmt.Sprintf(MSG1, len(recs)), start, *previous)
	*previous = time.Now()

	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}

	n, err := prep.NewNormalizerFromConfig(cfg.Prep)
	if err != nil {
		return nil, nil, err
	}
	cleanfn := outfile(cfg, vv.CLEANTABLE)
	fp, fperr := gen.Fingerprint(kindclean, cfg.Prep, gen.SortedKeys(n.Stops), recs)

	var nvs []str.NormalizedVerse
	if !cfg.Refresh && fperr == nil && db.StampMatches(cleanfn, fp) {
		if stored, e := db.ReadClean(cleanfn); e == nil && len(stored) == len(recs) {
			Msg.FYI(fmt.Sprintf(MSG3, cleanfn))
			nvs = stored
		}
	}

	if nvs == nil {
		if nvs, err = n.NormalizeCorpus(recs); err != nil {
			return nil, nil, err
		}
		if err = db.WriteClean(cleanfn, nvs); err != nil {
			return nil, nil, err
		}
		if fperr == nil {
			if err = db.WriteStamp(cleanfn, fp); err != nil {
				return nil, nil, err
			}
		}
	}
	Msg.Timer("A2", fmt.Sprintf(MSG2, len(nvs)), start, *previous)
	*previous = time.Now()

	return recs, nvs, ctx.Err()
}

// corpus - the stored raw table if the same source settings wrote it, else the vault, else the source itself
func corpus(ctx context.Context, cfg *str.CurrentConfiguration, src load.Source, vault db.Vault) ([]str.VerseRecord, error) {
	const (
		MSG1 = "reusing %s"
		MSG2 = "corpus %s found in the vault"
		MSG3 = "could not store the corpus in the vault: %s"
	)

	rawfn := outfile(cfg, vv.RAWTABLE)
	fp, fperr := gen.Fingerprint(db.KINDCORPUS, cfg.Source)

	if !cfg.Refresh && fperr == nil && db.StampMatches(rawfn, fp) {
		if recs, err := db.ReadRaw(rawfn); err == nil && len(recs) > 0 {
			Msg.FYI(fmt.Sprintf(MSG1, rawfn))
			return recs, nil
		}
	}

	var recs []str.VerseRecord
	if fperr == nil && !cfg.Refresh && vault.Check(fp) {
		if err := vault.Fetch(fp, &recs); err == nil && len(recs) > 0 {
			Msg.PEEK(fmt.Sprintf(MSG2, fp))
			return recs, writeraw(rawfn, recs, fp, fperr)
		}
	}

	recs, err := load.LoadCorpus(ctx, src, cfg.Source.Chapters, cfg.Source.Boilerplate)
	if err != nil {
		return nil, err
	}

	if fperr == nil {
		if e := vault.Add(fp, db.KINDCORPUS, recs); e != nil {
			Msg.WARN(fmt.Sprintf(MSG3, e.Error()))
		}
	}
	return recs, writeraw(rawfn, recs, fp, fperr)
}

// writeraw - the raw table plus the stamp that lets a later run trust it
func writeraw(fn string, recs []str.VerseRecord, fp string, fperr error) error {
	if err := db.WriteRaw(fn, recs); err != nil {
		return err
	}
	if fperr != nil {
		return nil
	}
	return db.WriteStamp(fn, fp)
}

// fit - consult the vault before fitting; only the seeded engine's models are worth keeping
func fit(docs [][]string, tc lda.Config, vault db.Vault) (lda.Model, error) {
	const (
		MSG1 = "model %s found in the vault"
		MSG2 = "could not store the model in the vault: %s"
	)

	cacheable := tc.Engine == lda.GIBBS
	fp, err := gen.Fingerprint(db.KINDMODEL, docs, tc)
	if err != nil {
		cacheable = false
	}

	if cacheable && vault.Check(fp) {
		var m lda.Model
		if e := vault.Fetch(fp, &m); e == nil && m.K == tc.K && len(m.Docs) == len(docs) {
			Msg.PEEK(fmt.Sprintf(MSG1, fp))
			return m, nil
		}
	}

	m, err := lda.Fit(docs, tc)
	if err != nil {
		return lda.Model{}, err
	}

	if cacheable {
		if e := vault.Add(fp, db.KINDMODEL, m); e != nil {
			Msg.WARN(fmt.Sprintf(MSG2, e.Error()))
		}
	}
	return m, nil
}

// openvault - a vault that cannot be opened degrades to no vault at all; a refresh empties it
func openvault(cfg *str.CurrentConfiguration) db.Vault {
	const (
		MSG1 = "vault unavailable (%s); continuing without it"
		MSG2 = "vault holds %d items (%dkB)"
		MSG3 = "could not empty the vault: %s"
	)

	lg := Msg.With(zap.String("vault", cfg.Vault.Kind))

	v, err := db.OpenVault(cfg.Vault, filepath.Dir(outfile(cfg, vv.RAWTABLE)))
	if err != nil {
		lg.WARN(fmt.Sprintf(MSG1, err.Error()))
		return db.NoVault{}
	}

	if cfg.Refresh {
		if e := v.Reset(); e != nil {
			lg.WARN(fmt.Sprintf(MSG3, e.Error()))
		}
	}

	if s, ok := v.(*db.SQLiteVault); ok {
		if n, size, e := s.Count(); e == nil {
			lg.TMI(fmt.Sprintf(MSG2, n, size/1024))
		}
	}
	return v
}

func tokens(nvs []str.NormalizedVerse) [][]string {
	docs := make([][]string, len(nvs))
	for i, v := range nvs {
		docs[i] = v.Tokens
	}
	return docs
}

func outfile(cfg *str.CurrentConfiguration, name string) string {
	dir := cfg.OutputDir
	if dir == "" {
		dir = vv.DEFAULTOUTPUTDIR
	}
	return filepath.Join(dir, name)
}
