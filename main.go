package main

import (
	"os"

	"github.com/halvard/quizdrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
