// Package cmd implements the kvs command line interface: get, set and rm
// subcommands over a store directory, plus version, info and perf.
// Not-found errors exit with code 3; all other failures exit with code 1.
package cmd
