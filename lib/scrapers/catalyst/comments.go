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
)

// extractAiComments never fails, it degrades to an empty slice. A
// ticket without comments is the common case and a malformed payload
// on ticket i must not stop iteration at ticket i+1.
func (s Scraper) extractAiComments(ctx context.Context, page browser.Page, enterprise string, ticket Ticket) []string {
	ctx, span := tracer.Start(ctx, "scraper:extractAiComments")
	defer span.End()
	span.SetAttributes(
		attribute.String("enterprise", enterprise),
		attribute.String("ticket_id", ticket.ID),
	)

	raw, err := capture.JSON(ctx, page, capture.Request{
		Predicate: capture.Predicate{
			URLContains: fmt.Sprintf("%s/tickets/%s/comments", s.opts.APIBase, ticket.ID),
		},
		Trigger: func(ctx context.Context) error {
			return page.Navigate(ctx, s.opts.AppURL+"/tickets/"+ticket.ID)
		},
		Readiness:   `div[data-testid="comment"]`,
		Timeout:     s.opts.CommentTimeout,
		WaitPayload: s.opts.StrictCapture,
	})
	if errors.Is(err, capture.ErrTimeout) {
		slog.InfoContext(ctx, "no comments found for ticket, skipping",
			"enterprise", enterprise, "ticket", ticket.Title)
		return nil
	}
	if err != nil {
		slog.WarnContext(ctx, "comment capture failed for ticket, skipping",
			"enterprise", enterprise, "ticket", ticket.Title, "err", err)
		span.RecordError(err)
		return nil
	}

	var filtered []string
	for _, record := range raw {
		var comment Comment
		if err := json.Unmarshal(record, &comment); err != nil {
			slog.WarnContext(ctx, "skipping malformed comment record",
				"enterprise", enterprise, "ticket", ticket.Title, "err", err)
			continue
		}
		if comment.CreatedBy.Name != AIReviewerName {
			continue
		}
		filtered = append(filtered, comment.Description)
	}

	slog.InfoContext(ctx, "filtered reviewer comments for ticket",
		"enterprise", enterprise, "ticket", ticket.Title,
		"total", len(raw), "kept", len(filtered))
	span.SetAttributes(attribute.Int("kept", len(filtered)))
	return filtered
}
