// Command catalogstage stages a print catalog PDF for review.
//
// Usage:
//
//	catalogstage extract --pdf catalog.pdf --out-dir staging_output
//	catalogstage serve --dir staging_output --addr :8080
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
