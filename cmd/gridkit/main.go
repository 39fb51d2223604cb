// Command gridkit inspects grid layouts and pages: it orders widgets,
// reports overlaps, diffs option files and replays drag scrolling against
// a page.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
