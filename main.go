package main

import (
	"os"

	"github.com/PolarWolf314/waypoint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
