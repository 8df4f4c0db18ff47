// Command cosmogony builds a typed, hierarchical, labeled set of
// administrative zones from an OSM extract.
package main

import (
	"os"

	"github.com/leapstack-labs/cosmogony/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
