//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/lnch"
	"github.com/e-gun/VerseAnalytics/internal/load"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/pipe"
	"github.com/e-gun/VerseAnalytics/internal/prep"
	"github.com/e-gun/VerseAnalytics/internal/rpt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"path/filepath"
)

var (
	Msg      = mm.NewMessageMaker()
	Config   *str.CurrentConfiguration
	profiler interface{ Stop() }

	cfgfile string
	outdir  string
	loglvl  int
	bw      bool
	refresh bool
	topics  int
	seed    int64
	engine  string
	lexicon string
	labels  string
	cpuprof bool
	memprof bool
	ks      []int
)

var rootCmd = &cobra.Command{
	Use:           vv.MYNAME,
	Short:         vv.ROOTSHORT,
	Long:          Msg.ColStyle(vv.ROOTLONG),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "config" {
			return nil
		}
		cfg, err := lnch.ConfigAtLaunch(cfgfile)
		if err != nil {
			return err
		}
		applyflags(cmd, cfg)
		if err = lnch.Validate(cfg); err != nil {
			return err
		}
		Config = cfg
		pipe.Configure(cfg)
		Msg = pipe.Msg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
		Msg.Sync()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "fetch, normalize, score, and model the corpus; write the tables and the report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		startprofiling(Config)
		lnch.PrintVersion(Config)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		src := load.NewHTMLSource(Config.Source)
		defer src.Close()

		summary, err := pipe.Run(ctx, Config, src)
		if err != nil {
			return err
		}
		rpt.RenderTables(os.Stdout, summary)
		return nil
	},
}

var ksweepCmd = &cobra.Command{
	Use:   "ksweep",
	Short: "score candidate topic counts by semantic coherence and held-out likelihood",
	Long: `Fits one model per candidate k and reports semantic coherence against held-out likelihood.
Nothing is chosen automatically: read ksweep.html and set Topics.K (or --k) yourself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		startprofiling(Config)
		lnch.PrintVersion(Config)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		src := load.NewHTMLSource(Config.Source)
		defer src.Close()

		kd, err := pipe.SweepK(ctx, Config, src)
		if err != nil {
			return err
		}
		rpt.RenderKSweep(os.Stdout, kd)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config [file]",
	Short: "write the default configuration (and stopword list) for editing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		const (
			MSG1 = "wrote %s and %s"
		)

		fn := cfgfile
		if len(args) == 1 {
			fn = args[0]
		}
		if fn == "" {
			h, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			fn = fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGBASIC
		}

		if err := lnch.WriteDefaultConfig(fn); err != nil {
			return err
		}
		sw := filepath.Join(filepath.Dir(fn), vv.CONFIGSTOPS)
		if err := prep.WriteStopConfig(sw); err != nil {
			return err
		}
		fmt.Println(fmt.Sprintf(MSG1, fn, sw))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version, build, and license information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lnch.PrintVersion(Config)
		lnch.PrintBuildInfo()
		lnch.PrintLicense()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgfile, "config", "c", "", "configuration file (default ./"+vv.CONFIGBASIC+" or ~/.config/"+vv.CONFIGBASIC+")")
	pf.StringVarP(&outdir, "out", "o", "", "output directory for tables and reports")
	pf.IntVar(&loglvl, "gl", vv.DEFAULTGOLOGLEVEL, "log level: 0 (quiet) to 5 (everything)")
	pf.BoolVar(&bw, "bw", false, "black and white terminal output")
	pf.BoolVar(&refresh, "refresh", false, "ignore stored stage tables and refetch the corpus")
	pf.Int64Var(&seed, "seed", vv.LDASEED, "random seed for the topic model")
	pf.StringVar(&engine, "engine", vv.LDAENGINE, "topic model engine: gibbs or variational")
	pf.BoolVar(&cpuprof, "pc", false, "write a CPU profile to the output directory")
	pf.BoolVar(&memprof, "pm", false, "write a memory profile to the output directory")

	runCmd.Flags().IntVarP(&topics, "k", "k", vv.LDATOPICS, "number of topics")
	runCmd.Flags().StringVar(&lexicon, "lexicon", "", "polarity lexicon (.json, .yaml, .tsv)")
	runCmd.Flags().StringVar(&labels, "labels", "", "image classifier labels to include in the report (.json or .csv)")

	ksweepCmd.Flags().IntSliceVar(&ks, "ks", vv.LDASEARCHKS, "candidate topic counts")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(ksweepCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyflags - flags that were actually given override the configuration file
func applyflags(cmd *cobra.Command, cfg *str.CurrentConfiguration) {
	fl := cmd.Flags()
	if fl.Changed("out") {
		cfg.OutputDir = outdir
	}
	if fl.Changed("gl") {
		cfg.LogLevel = loglvl
	}
	if fl.Changed("bw") {
		cfg.BlackAndWhite = bw
	}
	if fl.Changed("refresh") {
		cfg.Refresh = refresh
	}
	if fl.Changed("seed") {
		cfg.Topics.Seed = seed
	}
	if fl.Changed("engine") {
		cfg.Topics.Engine = engine
	}
	if fl.Changed("pc") {
		cfg.ProfileCPU = cpuprof
	}
	if fl.Changed("pm") {
		cfg.ProfileMEM = memprof
	}
	if fl.Lookup("k") != nil && fl.Changed("k") {
		cfg.Topics.K = topics
	}
	if fl.Lookup("lexicon") != nil && fl.Changed("lexicon") {
		cfg.Sentiment.LexiconFile = lexicon
	}
	if fl.Lookup("labels") != nil && fl.Changed("labels") {
		cfg.LabelsFile = labels
	}
	if fl.Lookup("ks") != nil && fl.Changed("ks") {
		cfg.Topics.SearchKs = ks
	}
}

// startprofiling - go tool pprof --pdf ./VerseAnalytics va-output/cpu.pprof > profile.pdf
func startprofiling(cfg *str.CurrentConfiguration) {
	dir := cfg.OutputDir
	if dir == "" {
		dir = vv.DEFAULTOUTPUTDIR
	}
	switch {
	case cfg.ProfileCPU:
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	case cfg.ProfileMEM:
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	}
}
