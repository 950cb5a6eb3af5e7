package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/perfectlabs/deployergo/internal/app"
	"github.com/perfectlabs/deployergo/internal/cli"
	"github.com/perfectlabs/deployergo/internal/hcl"
)

// main is the entrypoint for the deployergo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Any panic during startup (e.g. a duplicate module registration)
// is recovered and returned as an error.
func run(outW io.Writer, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL loader to pass to the app. No flows are
	// registered in a plain binary run; deployment files resolve their flows
	// as declared-only.
	loader := hcl.NewLoader()
	deployerApp := app.New(outW, appConfig, loader, nil)

	return deployerApp.Run(context.Background())
}
