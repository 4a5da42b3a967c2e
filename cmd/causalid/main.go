package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/causalid/internal/cli"
	"github.com/matzehuels/causalid/pkg/buildinfo"
	errs "github.com/matzehuels/causalid/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, errs.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	buildinfo.Resolve()

	c := cli.New(os.Stderr, cli.LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}

// exitCode distinguishes a query that is well-formed but not identifiable
// from usage and input errors.
func exitCode(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeNonIdentifiable, errs.ErrCodeNotAncestor:
		return 2
	}
	return 1
}
