package main

import (
	"os"

	"github.com/skyopshq/skyops/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
