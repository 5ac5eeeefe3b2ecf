//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BlackAndWhite bool
	ChtHt         string
	ChtWd         string
	LabelsFile    string // output of the external image classifier; optional
	LogLevel      int
	OutputDir     string
	Prep          PrepConfig
	ProfileCPU    bool
	ProfileMEM    bool
	Refresh       bool // ignore stored stage tables and refetch
	Sentiment     SentimentConfig
	Source        SourceConfig
	Topics        TopicConfig
	Vault         VaultConfig
}

type SourceConfig struct {
	Boilerplate   []string
	Chapters      int
	RespectRobots bool
	Selector      string
	TimeoutSecs   int
	URLTemplate   string
	UserAgent     string
}

type PrepConfig struct {
	LemmaFile string // extra "form<TAB>lemma" pairs
	StopFile  string // json list that replaces the built-in stopwords
}

type SentimentConfig struct {
	AmpWeight       float64
	DeAmpWeight     float64
	ExcludeNoMatch  bool
	LengthNormalize bool
	LexiconFile     string
	NegAfter        int
	NegBefore       int
}

type TopicConfig struct {
	Alpha          float64
	Beta           float64
	CoherenceTerms int
	Engine         string
	HeldOutFrac    float64
	HeldOutProp    float64
	Iterations     int
	K              int
	MinDocFreq     int
	SearchKs       []int
	Seed           int64
	TopN           int
}

type VaultConfig struct {
	File    string
	Kind    string
	PGLogin PostgresLogin
	Table   string
}
