package main

import (
	"os"

	"github.com/metaphox/rots-lang/cmd/rots/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
