package browser

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned by the bounded waits when the condition
// never shows up inside the window. Callers use errors.Is to tell it
// apart from a broken driver.
var ErrWaitTimeout = errors.New("browser: wait timed out")

// Response is one network response observed by the page.
type Response interface {
	URL() string
	ResourceType() string
	ContentType() string
	Body() ([]byte, error)
}

// Page drives a single tab of an authenticated session. Every wait
// carries an explicit timeout, there are no unbounded blocks.
type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	WaitForURL(ctx context.Context, pattern string, timeout time.Duration) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	// OnResponse subscribes handler to the page's response events and
	// returns the matching unsubscribe. The handler may be called from
	// the driver's own goroutine.
	OnResponse(handler func(Response)) (remove func())
}

// Session is an isolated logged-out page, one per tenant.
// Close must be safe to call exactly once on every exit path.
type Session interface {
	Page
	Close() error
}

type Driver interface {
	NewSession(ctx context.Context) (Session, error)
}
