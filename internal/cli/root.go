package cli

import (
	"github.com/arthur-debert/keeper/internal/version"
	"github.com/arthur-debert/keeper/pkg/logging"
	"github.com/arthur-debert/keeper/pkg/ui"
	"github.com/arthur-debert/keeper/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configFile string
	dataDir    string
	codec      string
	format     string
	events     bool
	metrics    bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "keeper",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.dataDir, "data-dir", "", MsgFlagDataDir)
	flags.StringVar(&opts.codec, "codec", "", MsgFlagCodec)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	flags.BoolVar(&opts.events, "events", false, MsgFlagEvents)
	flags.BoolVar(&opts.metrics, "metrics", false, MsgFlagMetrics)

	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newSetCmd(opts))
	rootCmd.AddCommand(newHasCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))
	rootCmd.AddCommand(newClearCmd(opts))
	rootCmd.AddCommand(newResetCmd(opts))
	rootCmd.AddCommand(newKeysCmd(opts))
	rootCmd.AddCommand(newValuesCmd(opts))
	rootCmd.AddCommand(newEntriesCmd(opts))
	rootCmd.AddCommand(newLengthCmd(opts))
	rootCmd.AddCommand(newLoadCmd(opts))
	rootCmd.AddCommand(newSaveCmd(opts))
	rootCmd.AddCommand(newStoresCmd(opts))

	return rootCmd
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console, err := ui.NewConsole(opts.format, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return console.Out.RenderResult(&display.VersionResult{
				Version: version.Version,
				Commit:  version.Commit,
				Date:    version.Date,
			})
		},
	}
}
