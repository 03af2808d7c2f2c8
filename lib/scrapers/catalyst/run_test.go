package catalyst

import (
	"context"
	"testing"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser/browsertest"
	"github.com/stretchr/testify/require"
)

func TestScrapeAllOneFailingOneSucceeding(t *testing.T) {
	// sessions race for hand-out order, so the login gate keys off the
	// filled email: only acme's credentials are accepted
	driver := browsertest.NewFakeDriver(func(int) *browsertest.FakeSession {
		session := acmePages(loginSession(false))
		session.ClickFunc(submitSelector, func(ctx context.Context, s *browsertest.FakeSession) error {
			if s.Filled(emailSelector) == "ai+acme@example.com" {
				return s.Navigate(ctx, testAppURL+"/tickets")
			}
			return nil
		})
		return session
	})
	s := testScraper(driver)

	results := s.ScrapeAll(context.Background(), []string{"globex", "acme"})

	require.Len(t, results, 2)
	// results keyed by input order, not completion order
	require.Equal(t, "Globex", results[0].Enterprise)
	require.Empty(t, results[0].Comments)
	require.Equal(t, "Acme", results[1].Enterprise)
	require.Equal(t, []string{"Tighten the header", "Swap the hero image"}, results[1].Comments)

	for _, session := range driver.Sessions() {
		require.Equal(t, 1, session.CloseCount())
	}
}

func TestScrapeAllEmptyTenantList(t *testing.T) {
	driver := browsertest.NewFakeDriver(func(int) *browsertest.FakeSession {
		return browsertest.NewFakeSession()
	})
	s := testScraper(driver)

	results := s.ScrapeAll(context.Background(), nil)
	require.Empty(t, results)
	require.Empty(t, driver.Sessions())
}
