package main

import (
	"os"

	"github.com/openlava/openlava-go/cmd/lavactl/cmd"
	"github.com/openlava/openlava-go/internal/common/logging"
)

func main() {
	logging.ConfigureCliLogging()
	root := cmd.RootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
