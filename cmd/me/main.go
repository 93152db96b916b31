package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/me/internal/app"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if err := app.New(args).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "me:", err)
		os.Exit(1)
	}
}
