// Package catalyst scrapes AI Reviewer comments out of the Catalyst
// ticketing app, one authenticated browser session per enterprise.
// The app renders everything client-side, so data comes from captured
// XHR responses (lib/capture) rather than parsed HTML.
package catalyst

import (
	"time"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser"
)

// AIReviewerName is the author identity that survives comment
// filtering. Exact match, everything else is discarded.
const AIReviewerName = "AI Reviewer"

type ScraperOptions struct {
	// AppURL is the web app origin, e.g. https://app.site.com
	AppURL string
	// APIBase is the substring identifying the catalyst API, e.g.
	// api.meaningfulgigs.com/v1/private/catalyst
	APIBase string
	// EmailDomain forms the per-enterprise login as ai+{enterprise}@{domain}.
	EmailDomain string
	// Password is shared across enterprise logins, supplied out-of-band.
	Password string

	// LoginTimeout bounds the post-login redirect wait. Generous,
	// login latency is the most variable part of the flow.
	LoginTimeout time.Duration
	// ListTimeout bounds the tickets listing capture.
	ListTimeout time.Duration
	// CommentTimeout bounds each per-ticket comment capture. Short,
	// a ticket without comments is a common outcome, not an anomaly.
	CommentTimeout time.Duration

	// StrictCapture waits on the response itself instead of trusting
	// the DOM readiness proxy. Off by default to match the historical
	// capture window semantics.
	StrictCapture bool
}

const (
	DefaultAppURL      = "https://app.site.com"
	DefaultAPIBase     = "api.meaningfulgigs.com/v1/private/catalyst"
	DefaultEmailDomain = "site.com"

	defaultLoginTimeout   = 60 * time.Second
	defaultListTimeout    = 30 * time.Second
	defaultCommentTimeout = 10 * time.Second
)

type Scraper struct {
	driver browser.Driver
	opts   ScraperOptions
}

func NewScraper(driver browser.Driver, opts ScraperOptions) Scraper {
	if opts.AppURL == "" {
		opts.AppURL = DefaultAppURL
	}
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	if opts.EmailDomain == "" {
		opts.EmailDomain = DefaultEmailDomain
	}
	if opts.LoginTimeout <= 0 {
		opts.LoginTimeout = defaultLoginTimeout
	}
	if opts.ListTimeout <= 0 {
		opts.ListTimeout = defaultListTimeout
	}
	if opts.CommentTimeout <= 0 {
		opts.CommentTimeout = defaultCommentTimeout
	}
	return Scraper{driver: driver, opts: opts}
}
