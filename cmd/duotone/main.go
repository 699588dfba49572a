package main

import (
	"github.com/bnema/duotone/internal/cli"
	"github.com/bnema/duotone/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Execute(build.New(version, commit, buildDate))
}
