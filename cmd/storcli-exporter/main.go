package main

import (
	"fmt"
	"os"

	"storcli-exporter/internal/cmd"
)

// Build-time variables (set via -ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	buildBy   = "unknown"
)

func main() {
	err := cmd.Execute(cmd.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		BuildBy:   buildBy,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
