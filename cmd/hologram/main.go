// Command hologram runs the hologram experience and its asset tooling.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hologram:", err)
		os.Exit(1)
	}
}
