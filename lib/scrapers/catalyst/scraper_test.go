package catalyst

import (
	"time"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser/browsertest"
)

const (
	testAppURL  = "https://app.example.com"
	testAPIBase = "api.example.com/v1/private/catalyst"
)

func testScraper(driver browser.Driver) Scraper {
	return NewScraper(driver, ScraperOptions{
		AppURL:         testAppURL,
		APIBase:        testAPIBase,
		EmailDomain:    "example.com",
		Password:       "hunter2",
		LoginTimeout:   time.Second,
		ListTimeout:    time.Second,
		CommentTimeout: 200 * time.Millisecond,
	})
}

func ticketsResponse(payload string) browsertest.FakeResponse {
	return browsertest.FakeResponse{
		RespURL: "https://" + testAPIBase + "/tickets",
		Payload: payload,
	}
}

func commentsResponse(ticketID, payload string) browsertest.FakeResponse {
	return browsertest.FakeResponse{
		RespURL: "https://" + testAPIBase + "/tickets/" + ticketID + "/comments",
		Payload: payload,
	}
}

// loginSession scripts the login page. succeed controls whether the
// submit click actually redirects to the tickets view.
func loginSession(succeed bool) *browsertest.FakeSession {
	session := browsertest.NewFakeSession().
		AddPage(testAppURL+"/login", &browsertest.FakePage{
			Selectors: []string{emailSelector, passwordSelector, submitSelector},
		})
	if succeed {
		session.ClickNavigates(submitSelector, testAppURL+"/tickets")
	}
	return session
}

// ticketListingPage renders the listing table and serves its payload.
func ticketListingPage(payload string) *browsertest.FakePage {
	return &browsertest.FakePage{
		Responses: []browsertest.FakeResponse{ticketsResponse(payload)},
		Selectors: []string{"tr.cursor-pointer"},
	}
}

// commentPage renders a ticket detail view with comments.
func commentPage(ticketID, payload string) *browsertest.FakePage {
	return &browsertest.FakePage{
		Responses: []browsertest.FakeResponse{commentsResponse(ticketID, payload)},
		Selectors: []string{`div[data-testid="comment"]`},
	}
}

// acmePages scripts acme's listing and two ticket detail views onto
// session: ticket A holds a mixed comment batch, ticket B's comment
// view never renders.
func acmePages(session *browsertest.FakeSession) *browsertest.FakeSession {
	return session.
		AddPage(testAppURL+"/tickets", ticketListingPage(
			`[{"_id":"ta","title":"Ticket A"},{"_id":"tb","title":"Ticket B"}]`,
		)).
		AddPage(testAppURL+"/tickets/ta", commentPage("ta",
			`[{"description":"Tighten the header","createdBy":{"name":"AI Reviewer"}},
			  {"description":"ship it","createdBy":{"name":"QA Bot"}},
			  {"description":"Swap the hero image","createdBy":{"name":"AI Reviewer"}}]`,
		)).
		AddPage(testAppURL+"/tickets/tb", &browsertest.FakePage{})
}
