package main

import (
	"os"

	"fortio.org/log"

	"github.com/ridulfo/nino-lang/cmd/nino/cmd"
)

func main() {
	log.SetDefaultsForClientTools()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
