package main

import (
	"weathercheck/internal/cli"
	_ "weathercheck/internal/rules/checks"
)

// These variables are populated by the build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
