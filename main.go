package main

import (
	"os"

	"github.com/terappia/terapp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
