package catalyst

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
)

// ScrapeAll runs every enterprise concurrently, each in its own
// isolated session, and waits for all of them. Results come back in
// input order, never completion order, and are complete even when an
// enterprise failed (its comments are just empty).
func (s Scraper) ScrapeAll(ctx context.Context, enterprises []string) []EnterpriseResult {
	ctx, span := tracer.Start(ctx, "scraper:ScrapeAll")
	defer span.End()
	span.SetAttributes(attribute.Int("enterprises", len(enterprises)))

	results := make([]EnterpriseResult, len(enterprises))
	var wg sync.WaitGroup
	for i, enterprise := range enterprises {
		wg.Add(1)
		go func(i int, enterprise string) {
			defer wg.Done()
			// each goroutine writes only its own slot
			results[i] = s.ScrapeEnterprise(ctx, enterprise)
		}(i, enterprise)
	}
	wg.Wait()
	return results
}
