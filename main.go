package main

import (
	"os"

	"github.com/linguoquest/linguoquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
