package catalyst

import "github.com/matt-meaningfulgigs/scrape-ai/lib/telemetry"

var tracer = telemetry.Tracer("scrape-ai.lib.scrapers.catalyst")
