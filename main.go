package main

import (
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe/internal/cmd"
)

// main - is the entry point of the application. Flags, config and logger are set up by the root command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := cmd.Root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "app run failed: %v\n", err)
		os.Exit(1)
	}
}
