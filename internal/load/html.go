//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"bytes"
	"context"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
	"net/url"
	"strings"
	"time"
)

// HTMLSource - one web page per chapter; the verses are whatever Selector matches, in document order
type HTMLSource struct {
	URLTemplate   string
	Selector      string
	UserAgent     string
	Timeout       time.Duration
	RespectRobots bool

	client *resty.Client
	robots map[string]*robotstxt.RobotsData
}

// NewHTMLSource - a source configured from the [Source] block of the configuration file
func NewHTMLSource(sc str.SourceConfig) *HTMLSource {
	h := &HTMLSource{
		URLTemplate:   sc.URLTemplate,
		Selector:      sc.Selector,
		UserAgent:     sc.UserAgent,
		Timeout:       time.Duration(sc.TimeoutSecs) * time.Second,
		RespectRobots: sc.RespectRobots,
	}
	if h.URLTemplate == "" {
		h.URLTemplate = vv.DEFAULTSOURCEURL
	}
	if h.Selector == "" {
		h.Selector = vv.DEFAULTSELECTOR
	}
	if h.UserAgent == "" {
		h.UserAgent = vv.DEFAULTUSERAGENT
	}
	if h.Timeout <= 0 {
		h.Timeout = vv.FETCHTIMEOUT * time.Second
	}
	return h
}

func (h *HTMLSource) init() {
	if h.client != nil {
		return
	}
	// no retries: a failed chapter fails the run
	h.client = resty.New().
		SetHeader("user-agent", h.UserAgent).
		SetTimeout(h.Timeout).
		SetRetryCount(0)
	h.robots = make(map[string]*robotstxt.RobotsData)
}

// FetchChapter - GET the chapter page and collect the text of every node matching the selector
func (h *HTMLSource) FetchChapter(ctx context.Context, chapter int) ([]string, error) {
	const (
		MSG1  = "fetching chapter %d from %s"
		FAIL1 = "%w: chapter %d (%s): %w"
		FAIL2 = "%w: chapter %d (%s): status %d"
		FAIL3 = "%w: chapter %d (%s): nothing matched '%s'"
		FAIL4 = "%w: chapter %d (%s): disallowed by robots.txt for '%s'"
	)

	h.init()

	link := fmt.Sprintf(h.URLTemplate, chapter)
	Msg.PEEK(fmt.Sprintf(MSG1, chapter, link))

	if h.RespectRobots {
		ok, err := h.allowed(ctx, link)
		if err != nil {
			return nil, fmt.Errorf(FAIL1, str.ErrSourceUnavailable, chapter, link, err)
		}
		if !ok {
			return nil, fmt.Errorf(FAIL4, str.ErrSourceUnavailable, chapter, link, h.UserAgent)
		}
	}

	res, err := h.client.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, str.ErrSourceUnavailable, chapter, link, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf(FAIL2, str.ErrSourceUnavailable, chapter, link, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf(FAIL1, str.ErrSourceUnavailable, chapter, link, err)
	}

	var fragments []string
	doc.Find(h.Selector).Each(func(_ int, sel *goquery.Selection) {
		fragments = append(fragments, strings.TrimSpace(sel.Text()))
	})

	if len(fragments) == 0 {
		return nil, fmt.Errorf(FAIL3, str.ErrSourceUnavailable, chapter, link, h.Selector)
	}
	return fragments, nil
}

// allowed - consult (and cache) the host's robots.txt; a missing robots.txt allows everything
func (h *HTMLSource) allowed(ctx context.Context, link string) (bool, error) {
	u, err := url.Parse(link)
	if err != nil {
		return false, err
	}

	host := u.Scheme + "://" + u.Host
	rd, seen := h.robots[host]
	if !seen {
		res, e := h.client.R().
			SetContext(ctx).
			Get(host + "/robots.txt")
		if e != nil {
			return false, e
		}
		rd, e = robotstxt.FromStatusAndBytes(res.StatusCode(), res.Body())
		if e != nil {
			return false, e
		}
		h.robots[host] = rd
	}

	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	return rd.TestAgent(p, h.UserAgent), nil
}

// Close - release idle keep-alive connections
func (h *HTMLSource) Close() {
	if h.client != nil {
		h.client.GetClient().CloseIdleConnections()
	}
}
