//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
)

// Fingerprint - md5 of the json of everything that determines a result; used as a vault key
func Fingerprint(parts ...any) (string, error) {
	var f []byte
	for _, p := range parts {
		b, err := json.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("Fingerprint() could not marshal %T: %w", p, err)
		}
		f = append(f, b...)
	}
	return fmt.Sprintf("%x", md5.Sum(f)), nil
}
