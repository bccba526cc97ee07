package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/deps/cmd/deps/commands"
)

func main() {
	if err := commands.GenerateManPage(commands.NewRootCmd(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
