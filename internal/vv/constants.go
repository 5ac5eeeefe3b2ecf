//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MYNAME    = "VerseAnalytics"
	SHORTNAME = "VA"
	VERSION   = "0.3.2"

	BLACKANDWHITE     = false
	CONFIGLOCATION    = "."
	CONFIGALTAPTH     = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC       = "va-conf.json"
	CONFIGSTOPS       = "va-stops.json"
	DEFAULTGOLOGLEVEL = 2
	DEFAULTOUTPUTDIR  = "va-output"
	JSONINDENT        = "  "
	READPERMS         = 0444
	WRITEPERMS        = 0644
	DIRPERMS          = 0755

	// the source: one page per chapter; %d = chapter number

	CHAPTERS         = 18
	DEFAULTSOURCEURL = "https://www.holy-bhagavad-gita.org/chapter/%d/"
	DEFAULTSELECTOR  = "div.verseShort, div.verseText, p.verse"
	DEFAULTUSERAGENT = "VerseAnalytics/0.3 (+https://github.com/e-gun/VerseAnalytics)"
	FETCHTIMEOUT     = 30 // seconds
	RESPECTROBOTS    = true

	// stage tables in the output directory

	RAWTABLE       = "raw.csv"
	CLEANTABLE     = "clean.csv"
	SENTTABLE      = "sentiment.csv"
	DOCTOPICTABLE  = "doctopics.csv"
	TOPICTABLE     = "topics.csv"
	KSWEEPTABLE    = "ksweep.csv"
	REPORTJSON     = "report.json"
	REPORTHTML     = "report.html"
	KSWEEPHTML     = "ksweep.html"
	CHARTWIDTH     = "1200px"
	CHARTHEIGHT    = "600px"
	TOPVERSESHOWN  = 3  // most positive and most negative verses listed in the summary
	TOPTERMSSHOWN  = 25 // corpus term frequencies listed in the summary
	SNIPPETLENGTH  = 96
	SUMMARYTERMSEP = ", "

	// the vault: "none", "sqlite", "postgres"

	VAULTKIND       = "none" // or "sqlite", "postgres": an optional cache
	VAULTFILE       = "va-vault.db"
	VAULTTABLE      = "va_vault"
	DEFAULTPSQLHOST = "127.0.0.1"
	DEFAULTPSQLUSER = "va_wr"
	DEFAULTPSQLPORT = 5432
	DEFAULTPSQLDB   = "verseanalyticsDB"
	PGPOOLMIN       = 1
	PGPOOLMAX       = 4
)

var (
	// BOILERPLATE - page furniture that the selector can catch alongside the verses
	BOILERPLATE = []string{"Search", "Share", "Translation", "Commentary"}
)
