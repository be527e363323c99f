package main

import (
	"os"

	"github.com/tanpawarit/Chative-Car-Rental/cmd"
	_ "github.com/tanpawarit/Chative-Car-Rental/pkg/logger/autoload"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
