package main

import (
	"fmt"
	"runtime"
)

var (
	version = "dev"
	commit  = "unknown"
)

func versionInfo() string {
	return fmt.Sprintf("rgrep v%s\nCommit: %s\nGo version: %s\nOS/Arch: %s/%s\n",
		version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
