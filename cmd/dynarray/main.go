// Command dynarray edits persistent lists of JSON values.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/dynarray/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(cli.GetExitCode(err))
}
