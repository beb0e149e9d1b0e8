package main

import (
	"os"

	"github.com/ksk-aiko/ResumeWebsite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
