package catalyst

import (
	"context"
	"errors"
	"testing"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser/browsertest"
	"github.com/stretchr/testify/require"
)

// the full scenario: two tickets, one with a mixed comment batch, one
// whose comment fetch times out entirely.
func acmeSession() *browsertest.FakeSession {
	return acmePages(loginSession(true))
}

func TestScrapeEnterprise(t *testing.T) {
	driver := browsertest.NewFakeDriver(func(int) *browsertest.FakeSession {
		return acmeSession()
	})
	s := testScraper(driver)

	result := s.ScrapeEnterprise(context.Background(), "acme")

	require.Equal(t, "Acme", result.Enterprise)
	require.False(t, result.Failed)
	// ticket B's timeout contributes nothing and aborts nothing
	require.Equal(t, []string{"Tighten the header", "Swap the hero image"}, result.Comments)

	sessions := driver.Sessions()
	require.Len(t, sessions, 1)
	require.Equal(t, 1, sessions[0].CloseCount())
	require.Equal(t, 0, sessions[0].HandlerCount())
	require.Equal(t, "ai+acme@example.com", sessions[0].Filled(emailSelector))
	require.Equal(t, "hunter2", sessions[0].Filled(passwordSelector))
}

func TestScrapeEnterpriseLoginFailureIsAbsorbed(t *testing.T) {
	driver := browsertest.NewFakeDriver(func(int) *browsertest.FakeSession {
		return loginSession(false)
	})
	s := testScraper(driver)

	result := s.ScrapeEnterprise(context.Background(), "acme")

	require.Equal(t, "Acme", result.Enterprise)
	require.Empty(t, result.Comments)
	require.True(t, result.Failed)

	sessions := driver.Sessions()
	require.Len(t, sessions, 1)
	require.Equal(t, 1, sessions[0].CloseCount())
}

func TestScrapeEnterpriseNoTicketsIsAbsorbed(t *testing.T) {
	driver := browsertest.NewFakeDriver(func(int) *browsertest.FakeSession {
		return loginSession(true).
			AddPage(testAppURL+"/tickets", ticketListingPage(`[]`))
	})
	s := testScraper(driver)

	result := s.ScrapeEnterprise(context.Background(), "acme")

	require.Equal(t, "Acme", result.Enterprise)
	require.Empty(t, result.Comments)
	require.Equal(t, 1, driver.Sessions()[0].CloseCount())
}

func TestScrapeEnterpriseSessionAcquireFailureIsAbsorbed(t *testing.T) {
	driver := browsertest.NewFakeDriver(func(int) *browsertest.FakeSession {
		return browsertest.NewFakeSession()
	})
	driver.Err = errors.New("browser went away")
	s := testScraper(driver)

	result := s.ScrapeEnterprise(context.Background(), "acme")
	require.Equal(t, "Acme", result.Enterprise)
	require.Empty(t, result.Comments)
}
