//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sent

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

//go:embed lexicon.yaml
var defaultlexicon []byte

// Lexicon - polarity weights for surface forms plus the valence shifters
type Lexicon struct {
	Polarity     map[string]float64 `json:"polarity" yaml:"polarity"`
	Negators     []string           `json:"negators" yaml:"negators"`
	Amplifiers   []string           `json:"amplifiers" yaml:"amplifiers"`
	DeAmplifiers []string           `json:"deamplifiers" yaml:"deamplifiers"`
}

// DefaultLexicon - the built-in lexicon
func DefaultLexicon() Lexicon {
	var lx Lexicon
	if err := yaml.Unmarshal(defaultlexicon, &lx); err != nil {
		// the embedded file is part of the build
		panic(fmt.Sprintf("DefaultLexicon() could not parse the embedded lexicon: %s", err.Error()))
	}
	return lx
}

// LoadLexicon - read a lexicon by extension: ".json", ".yaml"/".yml", ".tsv"/".txt"
func LoadLexicon(fn string) (Lexicon, error) {
	const (
		FAIL1 = "LoadLexicon() could not parse '%s': %w"
		FAIL2 = "LoadLexicon() does not know what to do with '%s'"
		FAIL3 = "%w: LoadLexicon() found no polarity weights in '%s'"
	)

	content, err := os.ReadFile(fn)
	if err != nil {
		return Lexicon{}, err
	}

	var lx Lexicon
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".json":
		lx, err = parsestructured(content, json.Unmarshal)
	case ".yaml", ".yml":
		lx, err = parsestructured(content, yaml.Unmarshal)
	case ".tsv", ".txt":
		lx, err = parsetsv(content)
	default:
		return Lexicon{}, fmt.Errorf(FAIL2, fn)
	}
	if err != nil {
		return Lexicon{}, fmt.Errorf(FAIL1, fn, err)
	}
	if len(lx.Polarity) == 0 {
		return Lexicon{}, fmt.Errorf(FAIL3, str.ErrInvalidInput, fn)
	}

	// a bare word list borrows the default shifters
	def := DefaultLexicon()
	if lx.Negators == nil {
		lx.Negators = def.Negators
	}
	if lx.Amplifiers == nil {
		lx.Amplifiers = def.Amplifiers
	}
	if lx.DeAmplifiers == nil {
		lx.DeAmplifiers = def.DeAmplifiers
	}

	lx.lower()
	return lx, nil
}

// parsestructured - either the full Lexicon or a bare {word: weight} map
func parsestructured(content []byte, unmarshal func([]byte, any) error) (Lexicon, error) {
	var lx Lexicon
	if err := unmarshal(content, &lx); err == nil && len(lx.Polarity) > 0 {
		return lx, nil
	}

	var bare map[string]float64
	if err := unmarshal(content, &bare); err != nil {
		return Lexicon{}, err
	}
	return Lexicon{Polarity: bare}, nil
}

// parsetsv - "word<TAB>weight" per line, AFINN style; '#' starts a comment
func parsetsv(content []byte) (Lexicon, error) {
	lx := Lexicon{Polarity: make(map[string]float64)}
	sc := bufio.NewScanner(bytes.NewReader(content))
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			return Lexicon{}, fmt.Errorf("line %d: want 'word<TAB>weight', got %q", ln, line)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return Lexicon{}, fmt.Errorf("line %d: %w", ln, err)
		}
		lx.Polarity[strings.TrimSpace(parts[0])] = w
	}
	return lx, sc.Err()
}

func (lx *Lexicon) lower() {
	p := make(map[string]float64, len(lx.Polarity))
	for k, v := range lx.Polarity {
		p[strings.ToLower(k)] = v
	}
	lx.Polarity = p
	for _, ss := range []*[]string{&lx.Negators, &lx.Amplifiers, &lx.DeAmplifiers} {
		for i := range *ss {
			(*ss)[i] = strings.ToLower((*ss)[i])
		}
	}
}
