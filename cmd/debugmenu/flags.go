package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cristianoliveira/debugmenu/cmd"
	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type flagsClient interface {
	OpenStore() (storage.Store, error)
}

// flagRow is the listing form of a registered flag.
type flagRow struct {
	Key        string `json:"key" yaml:"key"`
	Name       string `json:"name" yaml:"name"`
	Group      string `json:"group" yaml:"group"`
	Value      string `json:"value" yaml:"value"`
	Index      int    `json:"index" yaml:"index"`
	Default    string `json:"default" yaml:"default"`
	Persistent bool   `json:"persistent" yaml:"persistent"`
	Changed    bool   `json:"changed" yaml:"changed"`
}

func newFlagRow(f *action.Flag) flagRow {
	labels := f.Labels()
	def := ""
	if f.Default() >= 0 && f.Default() < len(labels) {
		def = labels[f.Default()]
	}
	return flagRow{
		Key:        f.Key(),
		Name:       f.Info().Name,
		Group:      f.Info().Group,
		Value:      f.Label(),
		Index:      f.AsInt(),
		Default:    def,
		Persistent: f.Persistent(),
		Changed:    f.Dirty(),
	}
}

// NewFlagsCmd creates the flags command with explicit dependencies.
func NewFlagsCmd(client flagsClient) *cobra.Command {
	if client == nil {
		panic("NewFlagsCmd: client dependency cannot be nil")
	}

	flagsCmd := &cobra.Command{
		Use:   "flags",
		Short: "Inspect and reset persisted flags",
		Long: `Inspect and reset the flags stored by the debug console.

USAGE:
    debugmenu flags list [--format table|json|yaml]
    debugmenu flags reset [KEY]`,
	}
	flagsCmd.AddCommand(newFlagsListCmd(client), newFlagsResetCmd(client))
	return flagsCmd
}

func newFlagsListCmd(client flagsClient) *cobra.Command {
	var format string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every registered flag with its stored value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := client.OpenStore()
			if err != nil {
				return fmt.Errorf("flags list: %w", err)
			}
			c := openCatalog(store)
			defer c.Close()

			flags := c.Registry().Flags()
			rows := make([]flagRow, 0, len(flags))
			for _, f := range flags {
				rows = append(rows, newFlagRow(f))
			}
			return writeFlags(cmd.OutOrStdout(), rows, format)
		},
	}
	listCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return listCmd
}

func newFlagsResetCmd(client flagsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [KEY]",
		Short: "Reset one flag, or all of them, to the default value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := client.OpenStore()
			if err != nil {
				return fmt.Errorf("flags reset: %w", err)
			}
			c := openCatalog(store)
			defer c.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				n := c.Registry().ResetFlags(false)
				fmt.Fprintf(out, "%d flag(s) reset\n", n)
				return nil
			}

			f, err := c.Registry().Flag(args[0])
			if err != nil {
				return fmt.Errorf("flags reset: %w", err)
			}
			f.Reset(false)
			fmt.Fprintf(out, "%s reset to %s\n", f.Key(), f.Label())
			return nil
		},
	}
}

func writeFlags(w io.Writer, rows []flagRow, format string) error {
	switch format {
	case "table":
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("KEY", "GROUP", "NAME", "VALUE", "DEFAULT", "PERSISTENT")
		for _, r := range rows {
			t.Row(r.Key, r.Group, r.Name, r.Value, r.Default, strconv.FormatBool(r.Persistent))
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: must be table, json or yaml", format)
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewFlagsCmd(client))
}
