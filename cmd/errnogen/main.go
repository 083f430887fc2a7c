// Command errnogen exports a platform's errno table as an interpreter
// header fragment.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/user/errnogen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
