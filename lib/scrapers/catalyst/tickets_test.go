package catalyst

import (
	"context"
	"testing"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser/browsertest"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/telemetry"
	"github.com/stretchr/testify/require"
)

func TestListTickets(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/catalyst")
	defer cleanup()

	session := browsertest.NewFakeSession().
		AddPage(testAppURL+"/tickets", ticketListingPage(
			`[{"_id":"t1","title":"Broken logo","status":"open"},
			  {"_id":"t2","title":"New banner"}]`,
		))
	s := testScraper(nil)

	tickets, err := s.listTickets(context.Background(), session, "acme")
	require.NoError(t, err)
	require.Equal(t, []Ticket{
		{ID: "t1", Title: "Broken logo"},
		{ID: "t2", Title: "New banner"},
	}, tickets)
}

func TestListTicketsEmptyListingIsFatal(t *testing.T) {
	session := browsertest.NewFakeSession().
		AddPage(testAppURL+"/tickets", ticketListingPage(`[]`))
	s := testScraper(nil)

	_, err := s.listTickets(context.Background(), session, "acme")
	require.ErrorIs(t, err, ErrNoTickets)
}

func TestListTicketsTimeoutIsFatal(t *testing.T) {
	// listing view never renders a row
	session := browsertest.NewFakeSession().
		AddPage(testAppURL+"/tickets", &browsertest.FakePage{})
	s := testScraper(nil)

	_, err := s.listTickets(context.Background(), session, "acme")
	require.ErrorIs(t, err, ErrNoTickets)
}

func TestListTicketsSkipsMalformedRecords(t *testing.T) {
	session := browsertest.NewFakeSession().
		AddPage(testAppURL+"/tickets", ticketListingPage(
			`[{"_id":"t1","title":"Broken logo"}, 42]`,
		))
	s := testScraper(nil)

	tickets, err := s.listTickets(context.Background(), session, "acme")
	require.NoError(t, err)
	require.Equal(t, []Ticket{{ID: "t1", Title: "Broken logo"}}, tickets)
}
