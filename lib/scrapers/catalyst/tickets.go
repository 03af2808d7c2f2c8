package catalyst

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/capture"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrNoTickets means the listing capture timed out or projected to
// nothing. The upstream API gives no "empty but valid" signal, so an
// empty listing is indistinguishable from a broken capture and is
// fatal for the enterprise session.
var ErrNoTickets = errors.New("catalyst: no tickets captured")

func (s Scraper) listTickets(ctx context.Context, page browser.Page, enterprise string) ([]Ticket, error) {
	ctx, span := tracer.Start(ctx, "scraper:listTickets")
	defer span.End()
	span.SetAttributes(attribute.String("enterprise", enterprise))

	raw, err := capture.JSON(ctx, page, capture.Request{
		Predicate: capture.Predicate{URLContains: s.opts.APIBase + "/tickets"},
		Trigger: func(ctx context.Context) error {
			return page.Navigate(ctx, s.opts.AppURL+"/tickets")
		},
		Readiness:   "tr.cursor-pointer",
		Timeout:     s.opts.ListTimeout,
		WaitPayload: s.opts.StrictCapture,
	})
	if err != nil {
		if errors.Is(err, capture.ErrTimeout) {
			span.SetStatus(codes.Error, "ticket listing timed out")
			return nil, fmt.Errorf("%w: %v", ErrNoTickets, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "ticket listing capture failed")
		return nil, err
	}

	tickets := make([]Ticket, 0, len(raw))
	for _, record := range raw {
		var ticket Ticket
		if err := json.Unmarshal(record, &ticket); err != nil {
			slog.WarnContext(ctx, "skipping malformed ticket record",
				"enterprise", enterprise, "err", err)
			continue
		}
		tickets = append(tickets, ticket)
	}
	if len(tickets) == 0 {
		span.SetStatus(codes.Error, "empty ticket listing")
		return nil, ErrNoTickets
	}

	slog.InfoContext(ctx, "captured tickets",
		"enterprise", enterprise, "count", len(tickets))
	span.SetAttributes(attribute.Int("tickets", len(tickets)))
	return tickets, nil
}
