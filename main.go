package main

import (
	"os"

	"github.com/km-arc/go-depmanager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
