// Package capture binds a network response to the navigation that
// triggered it. The page under automation fetches its data over XHR,
// so instead of re-requesting the API (and re-solving auth) we listen
// for the response the app itself made and lift the payload off the
// wire.
package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("scrape-ai.lib.capture")

// ErrTimeout means the capture window closed without the readiness
// condition (or, with WaitPayload, the payload) showing up. Whether
// that is fatal is the caller's call.
var ErrTimeout = errors.New("capture: timed out")

// Predicate matches the one response worth keeping. ResourceType
// defaults to "fetch", the app's API calls all go through XHR.
// Only JSON responses ever match.
type Predicate struct {
	URLContains  string
	ResourceType string
}

func (p Predicate) Matches(res browser.Response) bool {
	if !strings.Contains(res.URL(), p.URLContains) {
		return false
	}
	rt := p.ResourceType
	if rt == "" {
		rt = "fetch"
	}
	if res.ResourceType() != rt {
		return false
	}
	return strings.Contains(res.ContentType(), "application/json")
}

// Request describes one bounded capture window.
type Request struct {
	Predicate Predicate
	// Trigger is the action (a navigation) expected to cause the
	// response. The listener is attached before Trigger runs, the
	// payload can land before any DOM signal fires.
	Trigger func(ctx context.Context) error
	// Readiness is a selector whose appearance stands in for "the
	// response has been processed". It is a proxy, not a guarantee:
	// under adverse latency the response can land after the selector
	// renders and the capture comes back empty.
	Readiness string
	Timeout   time.Duration
	// WaitPayload additionally waits out the window for the first
	// predicate match after readiness, closing the latency race above
	// at the cost of the full timeout when no such response exists.
	WaitPayload bool
}

const defaultTimeout = 30 * time.Second

// JSON runs one capture window: attach listener, trigger, wait for
// readiness, detach. The returned slice holds the elements of the
// captured JSON array (a lone object counts as one element). The
// accumulator is local to the call, nothing is retained between
// invocations.
func JSON(ctx context.Context, page browser.Page, req Request) ([]json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "capture:JSON")
	defer span.End()
	span.SetAttributes(
		attribute.String("url_contains", req.Predicate.URLContains),
		attribute.String("readiness", req.Readiness),
	)

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	deadline := time.Now().Add(timeout)

	var mu sync.Mutex
	var captured []json.RawMessage
	arrived := make(chan struct{})
	var once sync.Once

	remove := page.OnResponse(func(res browser.Response) {
		if !req.Predicate.Matches(res) {
			return
		}
		body, err := res.Body()
		if err != nil {
			slog.WarnContext(ctx, "failed to read captured response body",
				"url", res.URL(), "err", err)
			return
		}
		payload, err := splitPayload(body)
		if err != nil {
			slog.WarnContext(ctx, "failed to decode captured response",
				"url", res.URL(), "err", err)
			return
		}
		mu.Lock()
		// a later matching response inside the window replaces the
		// earlier one
		captured = payload
		mu.Unlock()
		once.Do(func() { close(arrived) })
	})
	// detaching late is harmless, detaching early loses the payload
	defer remove()

	if err := req.Trigger(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "trigger failed")
		return nil, err
	}

	err := page.WaitForSelector(ctx, req.Readiness, time.Until(deadline))
	if err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			span.SetStatus(codes.Error, "readiness timeout")
			return nil, fmt.Errorf("%w: readiness %q", ErrTimeout, req.Readiness)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "readiness wait failed")
		return nil, err
	}

	if req.WaitPayload {
		mu.Lock()
		got := captured != nil
		mu.Unlock()
		if !got {
			select {
			case <-arrived:
			case <-time.After(time.Until(deadline)):
				mu.Lock()
				got = captured != nil
				mu.Unlock()
				if !got {
					span.SetStatus(codes.Error, "payload timeout")
					return nil, fmt.Errorf("%w: no response matching %q", ErrTimeout, req.Predicate.URLContains)
				}
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	mu.Lock()
	defer mu.Unlock()
	span.SetAttributes(attribute.Int("captured", len(captured)))
	return captured, nil
}

func splitPayload(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	if trimmed[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, err
		}
		return arr, nil
	}
	var obj json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, err
	}
	return []json.RawMessage{obj}, nil
}
