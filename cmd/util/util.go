// Package util provides configuration and logging glue for the CLI.
package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/valderique/kvgo/lib/store"
	"github.com/valderique/kvgo/lib/store/wstore"
)

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("kvs")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds all flags of a command (and its persistent parents)
// to viper so that env vars and flags resolve through one lookup.
func BindCommandFlags(cmd *cobra.Command) error {
	var bindErr error
	bind := func(f *pflag.Flag) {
		if err := viper.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	return bindErr
}

// SetupLogging configures the root log15 handler from the log-level flag.
func SetupLogging() error {
	lvl, err := log15.LvlFromString(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error, crit", viper.GetString("log-level"))
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(os.Stderr, log15.LogfmtFormat())))
	return nil
}

// OpenStore binds the command's flags and opens the WAL-backed store in the
// configured directory. The caller owns the returned store and must close it.
func OpenStore(cmd *cobra.Command) (store.IStore, error) {
	if err := BindCommandFlags(cmd); err != nil {
		return nil, err
	}
	if err := SetupLogging(); err != nil {
		return nil, err
	}

	dir := viper.GetString("dir")
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("current working directory could not be determined: %w", err)
		}
	}

	return wstore.Open(dir, nil)
}

// ValidateTokens rejects keys and values the line-oriented record format
// cannot represent.
func ValidateTokens(tokens ...string) error {
	for _, tok := range tokens {
		if tok == "" || strings.ContainsAny(tok, " \t\r\n") {
			return store.NewError(store.RetCValidation,
				fmt.Sprintf("keys and values must be non-empty and free of whitespace: %q", tok))
		}
	}
	return nil
}
