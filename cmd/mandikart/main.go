package main

import (
	"os"

	"github.com/mandikart/mandikart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
