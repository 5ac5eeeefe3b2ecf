//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "errors"

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInvalidInput      = errors.New("invalid input")
	ErrModelFit          = errors.New("topic model could not be fit")
)
