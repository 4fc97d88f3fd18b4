package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ghrelease/pkg/cli"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Run(ctx, os.Args)
	stop()

	os.Exit(int(types.ExitCodeOf(err)))
}
