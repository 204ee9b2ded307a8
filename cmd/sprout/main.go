// Command sprout runs the sprout demos and inspects project configuration.
package main

import (
	"fmt"
	"os"

	"github.com/sprout-ui/sprout/cmd/sprout/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
