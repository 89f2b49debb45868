package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/loopkit/loopc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			// Command output already printed its own error report.
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}
