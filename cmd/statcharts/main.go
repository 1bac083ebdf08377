package main

import (
	"context"
	"os"
	"time"

	"statcharts/cmd/statcharts/commands"
	"statcharts/lib/serviceutil"
	"statcharts/lib/telemetry"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	t, err := telemetry.SetupFromEnv(ctx, "statcharts")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	stopStats := t.StartPerfStats(ctx, 10*time.Second)
	err = commands.ExecuteContext(ctx)
	stopStats()
	t.Shutdown(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
