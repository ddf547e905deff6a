package main

import (
	"os"

	"github.com/formdraft/formdraft/cmd"
	_ "github.com/formdraft/formdraft/version" // Import for version info
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
