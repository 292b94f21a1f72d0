// Command modelkit builds and validates model manifests.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/oyna-ai/modelkit/internal/adapters/driving/cli"
)

// version is injected at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	err := cli.Execute(context.Background())
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}
