package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver runs a single Chromium process and hands out one
// isolated browser context per session.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

type PlaywrightOptions struct {
	Headless bool
}

func NewPlaywrightDriver(opts PlaywrightOptions) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &PlaywrightDriver{pw: pw, browser: b}, nil
}

func (d *PlaywrightDriver) NewSession(ctx context.Context) (Session, error) {
	bctx, err := d.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	return &playwrightSession{bctx: bctx, page: page}, nil
}

func (d *PlaywrightDriver) Close() error {
	errlist := []error{}
	if err := d.browser.Close(); err != nil {
		errlist = append(errlist, err)
	}
	if err := d.pw.Stop(); err != nil {
		errlist = append(errlist, err)
	}
	return errors.Join(errlist...)
}

type playwrightSession struct {
	bctx playwright.BrowserContext
	page playwright.Page
}

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	_, err := s.page.Goto(url)
	return err
}

func (s *playwrightSession) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	return mapTimeout(err)
}

func (s *playwrightSession) WaitForURL(ctx context.Context, pattern string, timeout time.Duration) error {
	err := s.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	return mapTimeout(err)
}

func (s *playwrightSession) Fill(ctx context.Context, selector, value string) error {
	return s.page.Fill(selector, value)
}

func (s *playwrightSession) Click(ctx context.Context, selector string) error {
	return s.page.Click(selector)
}

func (s *playwrightSession) OnResponse(handler func(Response)) func() {
	fn := func(res playwright.Response) {
		handler(playwrightResponse{res})
	}
	s.page.On("response", fn)
	return func() {
		s.page.RemoveListener("response", fn)
	}
}

func (s *playwrightSession) Close() error {
	return s.bctx.Close()
}

type playwrightResponse struct {
	res playwright.Response
}

func (r playwrightResponse) URL() string {
	return r.res.URL()
}

func (r playwrightResponse) ResourceType() string {
	return r.res.Request().ResourceType()
}

func (r playwrightResponse) ContentType() string {
	headers := r.res.Headers()
	return headers["content-type"]
}

func (r playwrightResponse) Body() ([]byte, error) {
	return r.res.Body()
}

func mapTimeout(err error) error {
	if err == nil {
		return nil
	}
	var perr *playwright.Error
	if errors.As(err, &perr) && perr.Name == "TimeoutError" {
		return fmt.Errorf("%w: %s", ErrWaitTimeout, perr.Message)
	}
	return err
}
