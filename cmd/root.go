package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/valderique/kvgo/cmd/util"
	"github.com/valderique/kvgo/lib/store"
)

const (
	Version = "0.1.0"

	// exitCodeNotFound is the exit code for a get on an absent key, kept
	// distinct from general failures so scripts can tell the two apart.
	exitCodeNotFound = 3
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "kvs",
		Short: "durable embedded key-value store",
		Long: fmt.Sprintf(`kvs (v%s)

An embedded, single-process, durable key-value store: an in-memory
index backed by an append-only write-ahead log, recoverable after a
crash.`, Version),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kvs",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kvs v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(perfCmd)

	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Flags
	RootCmd.PersistentFlags().String("dir", "", "store directory containing the write-ahead log (default: working directory)")
	RootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error, crit)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if store.IsNotFound(err) {
			os.Exit(exitCodeNotFound)
		}
		os.Exit(1)
	}
}
