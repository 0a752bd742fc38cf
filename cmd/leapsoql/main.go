// Package main provides the leapsoql command.
package main

import (
	"os"

	"github.com/leapstack-labs/leapsoql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
