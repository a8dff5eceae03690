package main

import (
	"os"

	"github.com/computerscienceiscool/license-search/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
