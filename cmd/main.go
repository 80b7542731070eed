package main

import (
	"os"

	"github.com/charmbracelet/log"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
