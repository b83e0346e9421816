// Package cmd implements the dice subcommands.
//
// Commands write their results to os.Stdout, or to the writer installed
// with [WithOutput]. None of them generates randomness: outcomes are always
// supplied by the user.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
