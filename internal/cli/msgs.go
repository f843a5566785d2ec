package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "A small persistent key-value store"
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
	MsgGetShort     = "Print the value of a key"
	MsgSetShort     = "Set the value of a key"
	MsgHasShort     = "Report whether a key is present"
	MsgDeleteShort  = "Remove a key"
	MsgClearShort   = "Remove every key of a store"
	MsgResetShort   = "Return a store to its defaults"
	MsgKeysShort    = "List the keys of a store"
	MsgValuesShort  = "List the values of a store"
	MsgEntriesShort = "Print every key and value of a store"
	MsgLengthShort  = "Print the number of keys of a store"
	MsgLoadShort    = "Reload a store from disk"
	MsgSaveShort    = "Write a store to disk"
	MsgStoresShort  = "List the stores keeper manages"

	// Status messages
	MsgSetFormat     = "Set %s in %s"
	MsgDeletedFormat = "Deleted %s from %s"
	MsgAbsentFormat  = "%s has no key %s"
	MsgClearedFormat = "Cleared %s"
	MsgResetFormat   = "Reset %s to its defaults"
	MsgLoadedFormat  = "Loaded %s"
	MsgSavedFormat   = "Saved %s"

	MsgInterruptedSaved = "**Interrupted.** Changes made so far were saved."

	// Error messages
	MsgErrInterrupted = "interrupted"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Configuration file (default is $XDG_CONFIG_HOME/keeper/keeper.toml)"
	MsgFlagDataDir = "Directory stores are kept in (overrides configuration)"
	MsgFlagCodec   = "On-disk format of stores: json, legacy, toml or yaml"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagEvents  = "Print change events as JSON lines on stderr"
	MsgFlagMetrics = "Print metrics in Prometheus text format on stderr after the command"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/set-long.txt
	msgSetLongRaw string
	MsgSetLong    = strings.TrimSpace(msgSetLongRaw)

	//go:embed msgs/set-example.txt
	msgSetExampleRaw string
	MsgSetExample    = strings.TrimRight(msgSetExampleRaw, "\n")

	//go:embed msgs/reset-long.txt
	msgResetLongRaw string
	MsgResetLong    = strings.TrimSpace(msgResetLongRaw)
)
