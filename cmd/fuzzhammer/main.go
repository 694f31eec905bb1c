// Command fuzzhammer is the CLI entrypoint: it delegates straight to the
// cobra command tree in internal/cli, mapping any returned error to exit
// code 1 and falling through to 0 on success.
package main

import (
	"fmt"
	"os"

	"github.com/rohmanhakim/fuzzhammer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fuzzhammer: %v\n", err)
		os.Exit(1)
	}
}
