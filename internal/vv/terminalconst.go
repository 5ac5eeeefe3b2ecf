//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the  
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or 
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJURL  = "https://github.com/e-gun/VerseAnalytics"

	ROOTSHORT = "batch sentiment and topic analysis of a chaptered verse corpus"
	ROOTLONG  = `VerseAnalytics fetches a chaptered verse text, normalizes it, scores the sentiment of each
verse with a lexicon, fits a topic model to the verses, and writes tables plus a report.

Stage tables are written to the output directory and reused on the next run unless
C1--refreshC0 is given. Configuration is read from C3va-conf.jsonC0 (and C3va-conf.local.jsonC0)
in the working directory or in C3~/.config/C0.`
)
