// sub001 - Parametric Cabinet Designer
//
// Headless companion to the cabinet configurator: inspects,
// recalculates, imports, and exports saved designs from the command
// line.
//
// Build:
//   go build -o sub001 ./cmd/sub001

package main

import (
	"fmt"
	"os"

	"github.com/rodor-repo/ThreeJS-sub001/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
