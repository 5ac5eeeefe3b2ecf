//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const chapterpage = `<html><body>
<nav><div class="verseShort">Search</div></nav>
<div class="verseShort">Dhritarashtra said: O Sanjay, what did my sons do?</div>
<div class="verseShort">   </div>
<div class="verseShort">Sanjay said:
  Beholding the army of the Pandavas...</div>
<div class="other">not a verse</div>
</body></html>`

func chapterserver(robots string, missing int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if robots == "" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, robots)
	})
	mux.HandleFunc("/chapter/", func(w http.ResponseWriter, r *http.Request) {
		var n int
		if _, err := fmt.Sscanf(r.URL.Path, "/chapter/%d/", &n); err != nil || n == missing {
			http.Error(w, "gone", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, chapterpage)
	})
	return httptest.NewServer(mux)
}

func testsource(srv *httptest.Server, robots bool) *HTMLSource {
	return NewHTMLSource(str.SourceConfig{
		URLTemplate:   srv.URL + "/chapter/%d/",
		Selector:      "div.verseShort",
		RespectRobots: robots,
		TimeoutSecs:   5,
	})
}

func TestLoadCorpusFromHTML(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := chapterserver("", 0)
	defer srv.Close()
	src := testsource(srv, true)
	defer src.Close()

	recs, err := LoadCorpus(context.Background(), src, 2, []string{"Search"})
	require.NoError(t, err)
	require.Len(t, recs, 4)

	assert.Equal(t, str.VerseRecord{Chapter: 1, Verse: 1, Text: "Dhritarashtra said: O Sanjay, what did my sons do?"}, recs[0])
	assert.Equal(t, 1, recs[1].Chapter)
	assert.Equal(t, 2, recs[1].Verse)
	assert.Contains(t, recs[1].Text, "Beholding the army")
	assert.Equal(t, 2, recs[3].Chapter)
	assert.Equal(t, 2, recs[3].Verse)
	assert.Equal(t, []int{1, 2}, Chapters(recs))
}

func TestMissingChapterAbortsLoad(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := chapterserver("", 2)
	defer srv.Close()
	src := testsource(srv, false)
	defer src.Close()

	recs, err := LoadCorpus(context.Background(), src, 3, nil)
	assert.ErrorIs(t, err, str.ErrSourceUnavailable)
	assert.Nil(t, recs)
}

func TestRobotsDisallow(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := chapterserver("User-agent: *\nDisallow: /chapter/\n", 0)
	defer srv.Close()
	src := testsource(srv, true)
	defer src.Close()

	_, err := src.FetchChapter(context.Background(), 1)
	assert.ErrorIs(t, err, str.ErrSourceUnavailable)

	src.RespectRobots = false
	ff, err := src.FetchChapter(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, ff, 4)
}

func TestSelectorMatchingNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := chapterserver("", 0)
	defer srv.Close()
	src := testsource(srv, false)
	src.Selector = "p.verse"
	defer src.Close()

	_, err := src.FetchChapter(context.Background(), 1)
	assert.ErrorIs(t, err, str.ErrSourceUnavailable)
}

func TestCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := chapterserver("", 0)
	defer srv.Close()
	src := testsource(srv, false)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadCorpus(ctx, src, 1, nil)
	assert.ErrorIs(t, err, str.ErrSourceUnavailable)
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{
		1: {"Search", "", "first verse", "  second verse  "},
		2: {"SEARCH", "only verse"},
	}
	recs, err := LoadCorpus(context.Background(), src, 2, []string{"search"})
	require.NoError(t, err)
	assert.Equal(t, []str.VerseRecord{
		{Chapter: 1, Verse: 1, Text: "first verse"},
		{Chapter: 1, Verse: 2, Text: "second verse"},
		{Chapter: 2, Verse: 1, Text: "only verse"},
	}, recs)

	again, err := LoadCorpus(context.Background(), StaticFromRecords(recs), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, recs, again)

	_, err = LoadCorpus(context.Background(), src, 3, nil)
	assert.ErrorIs(t, err, str.ErrSourceUnavailable)

	_, err = LoadCorpus(context.Background(), src, 0, nil)
	assert.ErrorIs(t, err, str.ErrInvalidInput)
}
