// Command carbonplan projects emission reduction scenarios and generates
// decarbonization roadmaps.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rshade/carbonplan/internal/cli"
	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/scenario"
	"github.com/rshade/carbonplan/pkg/version"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps input errors to exitUsage and everything else to exitFailure.
func exitCode(err error) int {
	for _, target := range []error{
		scenario.ErrNegativeEmissions,
		scenario.ErrHorizonOutOfRange,
		scenario.ErrReductionOutOfRange,
		scenario.ErrGrowthOutOfRange,
		scenario.ErrUnknownFormat,
		company.ErrUnknownOption,
		config.ErrInvalidConfig,
	} {
		if errors.Is(err, target) {
			return exitUsage
		}
	}
	return exitFailure
}
