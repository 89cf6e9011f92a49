package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// verbose is bound once on the root command and read by every subcommand's
// logger, mirroring a flag-bound-verbosity idiom for the CLI's ambient
// logging.
var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zlob",
		Short:         "A POSIX-compatible glob engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGlobCmd())
	root.AddCommand(newMatchCmd())
	root.AddCommand(newIgnoreCheckCmd())
	root.AddCommand(newMultiCmd())
	root.AddCommand(newWatchCmd())

	return root
}

func bindGlobFlags(fs *pflag.FlagSet, cfg *flagConfig) {
	fs.BoolVar(&cfg.Err, "err", false, "abort on directory-open error")
	fs.BoolVar(&cfg.Mark, "mark", false, "append / to directory matches")
	fs.BoolVar(&cfg.NoSort, "no-sort", false, "skip the final sort")
	fs.BoolVar(&cfg.NoCheck, "no-check", false, "return the pattern itself when there are no matches")
	fs.BoolVar(&cfg.Append, "append", false, "reserved for programmatic GLOB_APPEND use")
	fs.BoolVar(&cfg.NoEscape, "no-escape", false, "treat \\ as a literal byte")
	fs.BoolVar(&cfg.Period, "period", false, "allow wildcards to match a leading .")
	fs.BoolVar(&cfg.Brace, "brace", true, "enable {a,b,c} expansion")
	fs.BoolVar(&cfg.Tilde, "tilde", true, "enable ~ expansion")
	fs.BoolVar(&cfg.TildeCheck, "tilde-check", false, "fail instead of passing through an unresolved ~")
	fs.BoolVar(&cfg.OnlyDir, "only-dir", false, "return only directories")
	fs.BoolVar(&cfg.Gitignore, "gitignore", false, "apply gitignore-style pruning")
	fs.BoolVar(&cfg.Recursive, "recursive", true, "treat ** as a cross-directory wildcard")
	fs.BoolVar(&cfg.Extglob, "extglob", false, "enable ?() *() +() @() !() constructs")
	fs.BoolVar(&cfg.CaseFold, "case-fold", false, "ASCII case-insensitive matching")
	fs.StringVar(&cfg.IgnoreFile, "ignore-file", "", "path to a gitignore-style file to load with --gitignore")
}

func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
