package catalyst

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/textutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrLogin means credentials were rejected or the post-login redirect
// never reached the tickets view.
var ErrLogin = errors.New("catalyst: login did not reach the tickets view")

const (
	emailSelector    = `[data-testid="email-field"]`
	passwordSelector = `[data-testid="password-field"]`
	submitSelector   = `[data-testid="form-submit-cta"]`
)

// ScrapeEnterprise runs one enterprise's full session: login, list
// tickets, walk each ticket for reviewer comments. Every failure is
// absorbed here into an empty result, the session is closed on every
// exit path.
func (s Scraper) ScrapeEnterprise(ctx context.Context, enterprise string) EnterpriseResult {
	ctx, span := tracer.Start(ctx, "scraper:ScrapeEnterprise")
	defer span.End()
	span.SetAttributes(attribute.String("enterprise", enterprise))

	result := EnterpriseResult{Enterprise: textutil.Capitalize(enterprise)}

	session, err := s.driver.NewSession(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire browser session",
			"enterprise", enterprise, "stage", "init", "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "session acquire failed")
		result.Failed = true
		return result
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close browser session",
				"enterprise", enterprise, "err", err)
		}
	}()

	comments, err := s.scrapeSession(ctx, session, enterprise)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enterprise scrape failed")
		result.Failed = true
		return result
	}

	slog.InfoContext(ctx, "finished scraping enterprise",
		"enterprise", enterprise, "comments", len(comments))
	result.Comments = comments
	return result
}

func (s Scraper) scrapeSession(ctx context.Context, session browser.Session, enterprise string) ([]string, error) {
	if err := s.login(ctx, session, enterprise); err != nil {
		slog.ErrorContext(ctx, "enterprise scrape failed",
			"enterprise", enterprise, "stage", "login", "err", err)
		return nil, err
	}

	tickets, err := s.listTickets(ctx, session, enterprise)
	if err != nil {
		slog.ErrorContext(ctx, "enterprise scrape failed",
			"enterprise", enterprise, "stage", "listing", "err", err)
		return nil, err
	}

	// tickets are walked strictly in listing order, the report depends
	// on it
	comments := []string{}
	for _, ticket := range tickets {
		slog.InfoContext(ctx, "navigating to ticket",
			"enterprise", enterprise, "ticket", ticket.Title, "id", ticket.ID)
		comments = append(comments, s.extractAiComments(ctx, session, enterprise, ticket)...)
	}
	return comments, nil
}

func (s Scraper) login(ctx context.Context, session browser.Session, enterprise string) error {
	ctx, span := tracer.Start(ctx, "scraper:login")
	defer span.End()

	email := fmt.Sprintf("ai+%s@%s", enterprise, s.opts.EmailDomain)
	slog.InfoContext(ctx, "logging in", "enterprise", enterprise, "email", email)

	if err := session.Navigate(ctx, s.opts.AppURL+"/login"); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	if err := session.Fill(ctx, emailSelector, email); err != nil {
		return fmt.Errorf("fill email: %w", err)
	}
	if err := session.Fill(ctx, passwordSelector, s.opts.Password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := session.Click(ctx, submitSelector); err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}

	if err := session.WaitForURL(ctx, "**/tickets", s.opts.LoginTimeout); err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			span.SetStatus(codes.Error, "redirect timeout")
			return fmt.Errorf("%w: %v", ErrLogin, err)
		}
		return err
	}
	slog.InfoContext(ctx, "redirected to tickets view", "enterprise", enterprise)
	return nil
}
