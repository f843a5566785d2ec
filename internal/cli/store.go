package cli

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/keeper/pkg/stores"
	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/arthur-debert/keeper/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH KEY",
		Short: MsgGetShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				v, ok, err := reg.Get(path, key)
				if err != nil {
					return nil, err
				}
				return &display.ValueResult{Path: path, Key: key, Value: v, Found: ok}, nil
			})
		},
	}
}

func newSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "set PATH KEY VALUE",
		Short:   MsgSetShort,
		Long:    MsgSetLong,
		Example: MsgSetExample,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]
			value := parseValue(args[2])
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				if err := reg.Set(path, key, value); err != nil {
					return nil, err
				}
				return &display.ChangeResult{
					Command: "set",
					Path:    path,
					Key:     key,
					Message: fmt.Sprintf(MsgSetFormat, key, path),
				}, nil
			})
		},
	}
}

func newHasCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "has PATH KEY",
		Short: MsgHasShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				ok, err := reg.Has(path, key)
				if err != nil {
					return nil, err
				}
				return &display.BoolResult{Command: "has", Path: path, Key: key, Value: ok}, nil
			})
		},
	}
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete PATH KEY",
		Aliases: []string{"rm"},
		Short:   MsgDeleteShort,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				removed, err := reg.Delete(path, key)
				if err != nil {
					return nil, err
				}
				msg := fmt.Sprintf(MsgDeletedFormat, key, path)
				if !removed {
					msg = fmt.Sprintf(MsgAbsentFormat, path, key)
				}
				return &display.ChangeResult{Command: "delete", Path: path, Key: key, Message: msg}, nil
			})
		},
	}
}

func newClearCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear PATH",
		Short: MsgClearShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(cmd, opts, "clear", args[0], MsgClearedFormat, (*stores.Registry).Clear)
		},
	}
}

func newResetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset PATH",
		Short: MsgResetShort,
		Long:  MsgResetLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(cmd, opts, "reset", args[0], MsgResetFormat, (*stores.Registry).Reset)
		},
	}
}

func newLoadCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load PATH",
		Short: MsgLoadShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(cmd, opts, "load", args[0], MsgLoadedFormat, (*stores.Registry).Load)
		},
	}
}

func newSaveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save PATH",
		Short: MsgSaveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(cmd, opts, "save", args[0], MsgSavedFormat, (*stores.Registry).Save)
		},
	}
}

func newKeysCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys PATH",
		Short: MsgKeysShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				keys, err := reg.Keys(path)
				if err != nil {
					return nil, err
				}
				return &display.ListResult{Command: "keys", Path: path, Items: keys}, nil
			})
		},
	}
}

func newValuesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "values PATH",
		Short: MsgValuesShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				values, err := reg.Values(path)
				if err != nil {
					return nil, err
				}
				return &display.ValuesResult{Path: path, Values: values}, nil
			})
		},
	}
}

func newEntriesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entries PATH",
		Short: MsgEntriesShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				entries, err := reg.Entries(path)
				if err != nil {
					return nil, err
				}
				return &display.EntriesResult{Path: path, Entries: entries}, nil
			})
		},
	}
}

func newLengthCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "length PATH",
		Short: MsgLengthShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				n, err := reg.Length(path)
				if err != nil {
					return nil, err
				}
				return &display.CountResult{Path: path, Count: n}, nil
			})
		},
	}
}

func newStoresCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: MsgStoresShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
				return &display.ListResult{Command: "stores", Items: reg.Paths()}, nil
			})
		},
	}
}

// runChange runs a whole-store operation that has no result of its own.
func runChange(cmd *cobra.Command, opts *globalOptions, name, path, format string, op func(*stores.Registry, string) error) error {
	return runStore(cmd, opts, func(reg *stores.Registry) (interface{}, error) {
		if err := op(reg, path); err != nil {
			return nil, err
		}
		return &display.ChangeResult{Command: name, Path: path, Message: fmt.Sprintf(format, path)}, nil
	})
}

// parseValue reads a command-line value as JSON, falling back to the raw
// string when it is not valid JSON.
func parseValue(raw string) types.Value {
	var v types.Value
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
