package main

import (
	"os"

	"github.com/zatekoja/costestimator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
