// Command dppsample draws exact samples from a projection DPP described by a
// YAML job file and prints one sample per line.
//
//	dppsample --config job.yaml --draws 100 --mode Chol --log-level debug
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
