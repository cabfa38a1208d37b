package main

import (
	"os"

	"libdeps/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
