package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kolah/scribe/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.RootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		stop()
		os.Exit(1)
	}
}
