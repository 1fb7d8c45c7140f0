// Package main is the entry point for the someipbind tool.
package main

import (
	"fmt"
	"os"

	"github.com/adaptivemw/someipbind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
