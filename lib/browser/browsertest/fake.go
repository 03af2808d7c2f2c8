// Package browsertest provides a scripted in-memory browser driver for
// exercising scrape flows without a real browser process.
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser"
)

// FakeResponse is a scripted network response. Zero values for Type and
// ContentTyp default to what the upstream app actually emits.
type FakeResponse struct {
	RespURL    string
	Type       string
	ContentTyp string
	Payload    string
	BodyErr    error
}

func (r FakeResponse) URL() string { return r.RespURL }

func (r FakeResponse) ResourceType() string {
	if r.Type == "" {
		return "fetch"
	}
	return r.Type
}

func (r FakeResponse) ContentType() string {
	if r.ContentTyp == "" {
		return "application/json"
	}
	return r.ContentTyp
}

func (r FakeResponse) Body() ([]byte, error) {
	if r.BodyErr != nil {
		return nil, r.BodyErr
	}
	return []byte(r.Payload), nil
}

// FakePage scripts what one navigated URL looks like: which responses
// arrive, which selectors render, and how late the responses land.
// A DeliverDelay longer than the capture window reproduces the
// "response after readiness" race.
type FakePage struct {
	Responses    []FakeResponse
	Selectors    []string
	DeliverDelay time.Duration
}

var (
	_ browser.Session = (*FakeSession)(nil)
	_ browser.Driver  = (*FakeDriver)(nil)
)

type FakeSession struct {
	mu       sync.Mutex
	pages    map[string]*FakePage
	onClick  map[string]func(ctx context.Context, s *FakeSession) error
	fills    map[string]string
	handlers map[int]func(browser.Response)
	nextID   int
	current  *FakePage
	url      string
	closes   int
	pending  sync.WaitGroup
}

func NewFakeSession() *FakeSession {
	return &FakeSession{
		pages:    map[string]*FakePage{},
		onClick:  map[string]func(ctx context.Context, s *FakeSession) error{},
		fills:    map[string]string{},
		handlers: map[int]func(browser.Response){},
	}
}

// AddPage scripts the page served at url.
func (s *FakeSession) AddPage(url string, page *FakePage) *FakeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[url] = page
	return s
}

// ClickNavigates makes a click on selector behave like a navigation,
// the way a submit button does.
func (s *FakeSession) ClickNavigates(selector, url string) *FakeSession {
	return s.ClickFunc(selector, func(ctx context.Context, s *FakeSession) error {
		return s.Navigate(ctx, url)
	})
}

// ClickFunc scripts an arbitrary reaction to a click, e.g. a login
// submit that only redirects for the right credentials.
func (s *FakeSession) ClickFunc(selector string, fn func(ctx context.Context, s *FakeSession) error) *FakeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClick[selector] = fn
	return s
}

func (s *FakeSession) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	page := s.pages[url]
	if page == nil {
		page = &FakePage{}
	}
	s.url = url
	s.current = page
	s.mu.Unlock()

	if page.DeliverDelay > 0 {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			time.Sleep(page.DeliverDelay)
			s.deliver(page)
		}()
		return nil
	}
	s.deliver(page)
	return nil
}

func (s *FakeSession) deliver(page *FakePage) {
	s.mu.Lock()
	handlers := make([]func(browser.Response), 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, res := range page.Responses {
		for _, h := range handlers {
			h(res)
		}
	}
}

func (s *FakeSession) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	s.mu.Lock()
	page := s.current
	s.mu.Unlock()
	if page != nil {
		for _, sel := range page.Selectors {
			if sel == selector {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: selector %q", browser.ErrWaitTimeout, selector)
}

func (s *FakeSession) WaitForURL(ctx context.Context, pattern string, timeout time.Duration) error {
	s.mu.Lock()
	url := s.url
	s.mu.Unlock()
	if strings.HasSuffix(url, strings.TrimPrefix(pattern, "**")) {
		return nil
	}
	return fmt.Errorf("%w: url pattern %q", browser.ErrWaitTimeout, pattern)
}

func (s *FakeSession) Fill(ctx context.Context, selector, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fills[selector] = value
	return nil
}

func (s *FakeSession) Click(ctx context.Context, selector string) error {
	s.mu.Lock()
	fn := s.onClick[selector]
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, s)
	}
	return nil
}

func (s *FakeSession) OnResponse(handler func(browser.Response)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

func (s *FakeSession) Close() error {
	// wait for straggler deliveries so tests never race teardown
	s.pending.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

// CloseCount reports how many times Close ran.
func (s *FakeSession) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// HandlerCount reports how many response listeners are still attached.
func (s *FakeSession) HandlerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// Filled reports the last value filled into selector.
func (s *FakeSession) Filled(selector string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fills[selector]
}

// FakeDriver hands out scripted sessions, one per NewSession call.
type FakeDriver struct {
	mu       sync.Mutex
	script   func(enterpriseIdx int) *FakeSession
	sessions []*FakeSession
	Err      error
}

func NewFakeDriver(script func(enterpriseIdx int) *FakeSession) *FakeDriver {
	return &FakeDriver{script: script}
}

func (d *FakeDriver) NewSession(ctx context.Context) (browser.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	s := d.script(len(d.sessions))
	d.sessions = append(d.sessions, s)
	return s, nil
}

// Sessions returns every session handed out so far.
func (d *FakeDriver) Sessions() []*FakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*FakeSession{}, d.sessions...)
}
