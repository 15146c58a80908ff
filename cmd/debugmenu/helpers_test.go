package main

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/debugmenu/internal/config"
	"github.com/cristianoliveira/debugmenu/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// keepOpen lets a test inspect the store after the command closed it.
type keepOpen struct {
	storage.Store
}

func (keepOpen) Close() error { return nil }

type fakeClient struct {
	store    storage.Store
	openErr  error
	terminal bool
	opened   int
}

func (f *fakeClient) Version() string { return "1.2.3" }

func (f *fakeClient) OpenStore() (storage.Store, error) {
	f.opened++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return keepOpen{f.store}, nil
}

func (f *fakeClient) IsTerminal() bool { return f.terminal }

func newFakeClient() *fakeClient {
	return &fakeClient{store: storage.NewMemoryStore()}
}

func setupEnv(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("HOME", tmp)
	config.Load()
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func requirePanics(t *testing.T, msg string, fn func()) {
	t.Helper()
	require.PanicsWithValue(t, msg, fn)
}
