// Package main provides logictl, the offline Logistics Net command line tool.
//
// logictl runs the ranking, planning and synthesis code against a reference
// catalog without a server, database or queue.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
