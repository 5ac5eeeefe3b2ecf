//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/gen"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"os"
	"path/filepath"
	"sort"
)

//
// STOPWORDS
//

// ReadStopConfig - read a json list of stopwords; if the file does not exist, write the built-in list there
func ReadStopConfig(fn string) ([]string, error) {
	const (
		FAIL1 = "ReadStopConfig() failed to parse '%s': %w"
	)

	stops := gen.StringMapKeysIntoSlice(GetStopSet())
	if fn == "" {
		return stops, nil
	}

	content, err := os.ReadFile(fn)
	if errors.Is(err, os.ErrNotExist) {
		if e := WriteStopConfig(fn); e != nil {
			return nil, e
		}
		return stops, nil
	}
	if err != nil {
		return nil, err
	}

	var stp []string
	if err = json.Unmarshal(content, &stp); err != nil {
		return nil, fmt.Errorf(FAIL1, fn, err)
	}
	return stp, nil
}

// WriteStopConfig - persist the built-in list, alphabetized, as a json list
func WriteStopConfig(fn string) error {
	const (
		MSG1 = "WriteStopConfig() wrote stopword configuration file: "
	)

	stops := gen.StringMapKeysIntoSlice(GetStopSet())
	sort.Strings(stops)
	js, err := json.MarshalIndent(stops, "", vv.JSONINDENT)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return err
	}
	if err = os.WriteFile(fn, js, vv.WRITEPERMS); err != nil {
		return err
	}
	Msg.PEEK(MSG1 + fn)
	return nil
}

var (
	// English150 - high frequency function words
	English150 = []string{"a", "about", "above", "after", "again", "against", "all", "also", "an", "and", "any",
		"as", "at", "be", "because", "before", "below", "between", "both", "but", "by", "can", "cannot", "could",
		"do", "down", "each", "either", "even", "ever", "every", "few", "for", "from", "further", "good", "great",
		"have", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how", "i", "if", "in", "into",
		"it", "its", "itself", "just", "let", "like", "may", "me", "might", "more", "most", "much", "must", "my",
		"myself", "neither", "no", "nor", "not", "now", "of", "off", "on", "once", "one", "only", "or", "other",
		"our", "ours", "ourselves", "out", "over", "own", "same", "self", "shall", "she", "should", "so", "some",
		"such", "than", "that", "the", "their", "theirs", "them", "themselves", "then", "there", "these", "they",
		"this", "those", "through", "thus", "to", "too", "under", "until", "up", "upon", "us", "very", "we",
		"well", "what", "when", "where", "whether", "which", "while", "who", "whom", "whose", "why", "will",
		"with", "within", "without", "would", "yet", "you", "your", "yours", "yourself", "yourselves", "say",
		"therefore", "among", "whatever", "whoever", "however", "although", "though", "since", "toward"}
	// ArchaicExtra - the register of older verse translations
	ArchaicExtra = []string{"thou", "thee", "thy", "thine", "thyself", "ye", "art", "hath", "hast", "doth", "dost",
		"shalt", "wilt", "canst", "couldst", "wouldst", "shouldst", "mayst", "unto", "wherefore", "whence",
		"whither", "hither", "thither", "thereof", "therein", "whereby", "wherein", "hence", "lo", "o", "oh",
		"verily", "yea", "nay", "ere", "amongst", "betwixt", "twixt", "nigh"}
	EnglishStop = append(English150, ArchaicExtra...)
	// EnglishKeep - members of EnglishStop we will not toss
	EnglishKeep = []string{"self", "good", "great", "well"}
)

// GetStopSet - the built-in stopwords less the keep list
func GetStopSet() map[string]struct{} {
	es := gen.SetSubtraction(EnglishStop, EnglishKeep)
	return gen.ToSet(es)
}
