package main

import (
	"os"

	"github.com/cristianoliveira/debugmenu/internal/storage"
	"github.com/cristianoliveira/debugmenu/internal/version"
	"golang.org/x/term"
)

// appClient backs the commands with the configured store and the real
// terminal.
type appClient struct{}

func (appClient) Version() string {
	return version.String()
}

func (appClient) OpenStore() (storage.Store, error) {
	return storage.NewFromConfig()
}

func (appClient) IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var client = appClient{}
