//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "fmt"

// VerseRecord - one raw verse as fetched; Verse is its 1-based position inside the chapter
type VerseRecord struct {
	Chapter int
	Verse   int
	Text    string
}

func (v VerseRecord) Locus() string {
	return fmt.Sprintf("%d.%d", v.Chapter, v.Verse)
}

// NormalizedVerse - a verse after the normalizer; aligned 1:1 with its VerseRecord
type NormalizedVerse struct {
	Chapter   int
	Verse     int
	Sentences []string // lowercase, punctuation free, pre-lemmatization
	Cleaned   string
	Tokens    []string
}

func (n NormalizedVerse) Locus() string {
	return fmt.Sprintf("%d.%d", n.Chapter, n.Verse)
}

type SentimentResult struct {
	Chapter int
	Verse   int
	Score   float64
	Matched bool // at least one lexicon hit
	Words   int
}

// ClassifierLabel - one label from the external image classifier
type ClassifierLabel struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
