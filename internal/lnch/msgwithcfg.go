//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"os"
)

// NewMessageMakerConfigured - a stdout MessageMaker at the configured level and color setting
func NewMessageMakerConfigured(cfg *str.CurrentConfiguration) *mm.MessageMaker {
	return mm.NewMessageMakerTo(os.Stdout, cfg.LogLevel, cfg.BlackAndWhite)
}

