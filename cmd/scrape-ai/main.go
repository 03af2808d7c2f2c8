package main

import (
	"context"

	"github.com/matt-meaningfulgigs/scrape-ai/cmd/scrape-ai/commands"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/serviceutil"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/telemetry"
)

func main() {
	telemetry.InitSlog(true)
	tel, err := telemetry.SetupFromEnv(context.Background(), "scrape-ai")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	ctx := serviceutil.SignalContext()
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
