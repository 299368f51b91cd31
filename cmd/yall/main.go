package main

import (
	"os"

	"github.com/11bDev/yall-sub001/cmd/yall/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
