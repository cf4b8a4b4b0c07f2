package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
)

// runner is the part of *fx.App that run drives.
type runner interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

// run starts app, blocks until ctx is cancelled or fx asks to shut down, and
// stops it within the container's stop timeout. It returns the exit code.
func run(ctx context.Context, app runner, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start webstudio: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case sig := <-app.Done():
		fmt.Fprintf(stderr, "webstudio received %v, shutting down\n", sig)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "failed to stop webstudio: %v\n", err)
		return 1
	}
	return 0
}
