package main

import (
	"os"
	"strings"

	"github.com/cristianoliveira/debugmenu/cmd"
	"github.com/cristianoliveira/debugmenu/internal/colors"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the CLI and maps the outcome to an exit code. The console
// owns the terminal, so only the other commands log their start.
func run(args []string, execute func() error) int {
	if len(args) == 0 || args[0] != "run" {
		colors.Debug("debugmenu:", strings.Join(args, " "))
	}
	if err := execute(); err != nil {
		colors.Error(err.Error())
		return 1
	}
	return 0
}
