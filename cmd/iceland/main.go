// Package main provides the iceland CLI application.
//
// iceland keeps track of the area you are working in (work, math,
// learning, ...). Switching areas closes the running session against the
// old area and starts a new one, so the session ledger always says where
// the time went.
package main

import (
	"fmt"
	"os"
)

// version is set during build time.
var version = "dev"

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := a.execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
