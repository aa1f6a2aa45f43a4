package main

import (
	"os"

	"scrolltable/cmd"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if err := cmd.Execute(version, cmd.Run); err != nil {
		os.Exit(1)
	}
}
