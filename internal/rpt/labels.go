//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rpt

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LoadClassifierLabels - read labels produced elsewhere by an image classifier: JSON [{"label","confidence"}]
// or CSV "label,confidence" (a header row is optional); returned with the most confident first
func LoadClassifierLabels(fn string) ([]str.ClassifierLabel, error) {
	const (
		FAIL1 = "LoadClassifierLabels() could not read %s: %w"
		FAIL2 = "%w: %s: confidence %v for '%s' is outside [0,1]"
		FAIL3 = "%w: %s: unparseable confidence '%s' on line %d"
	)

	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, fn, err)
	}

	var labels []str.ClassifierLabel

	switch strings.ToLower(filepath.Ext(fn)) {
	case ".json":
		if err = json.Unmarshal(b, &labels); err != nil {
			return nil, fmt.Errorf(FAIL1, fn, fmt.Errorf("%w: %w", str.ErrInvalidInput, err))
		}
	default:
		r := csv.NewReader(strings.NewReader(string(b)))
		r.FieldsPerRecord = 2
		r.TrimLeadingSpace = true
		rows, e := r.ReadAll()
		if e != nil {
			return nil, fmt.Errorf(FAIL1, fn, fmt.Errorf("%w: %w", str.ErrInvalidInput, e))
		}
		for i, row := range rows {
			if i == 0 && strings.EqualFold(row[0], "label") {
				continue
			}
			c, e := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
			if e != nil {
				return nil, fmt.Errorf(FAIL3, str.ErrInvalidInput, fn, row[1], i+1)
			}
			labels = append(labels, str.ClassifierLabel{Label: strings.TrimSpace(row[0]), Confidence: c})
		}
	}

	for _, l := range labels {
		if l.Confidence < 0 || l.Confidence > 1 {
			return nil, fmt.Errorf(FAIL2, str.ErrInvalidInput, fn, l.Confidence, l.Label)
		}
	}

	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Confidence > labels[j].Confidence })
	return labels, nil
}
