package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dmtrKovalenko/zlob"
	"github.com/dmtrKovalenko/zlob/ignorefs"
)

func newGlobCmd() *cobra.Command {
	cfg := &flagConfig{}

	cmd := &cobra.Command{
		Use:   "glob <pattern>",
		Short: "Expand a glob pattern against the filesystem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigLayer(cmd.Flags(), cfg); err != nil {
				return err
			}

			if err := cfg.validate(); err != nil {
				return err
			}

			opts, err := cfg.options()
			if err != nil {
				return err
			}

			res, err := zlob.Glob(args[0], cfg.toFlag(), opts...)
			if err != nil && err != zlob.ErrNoMatch {
				return err
			}

			for _, p := range res.Matches() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}

			logf("matched %d path(s)", res.Pathc)

			return nil
		},
	}

	bindGlobFlags(cmd.Flags(), cfg)

	return cmd
}

// options translates the bound flagConfig fields that zlob.Flag cannot
// express directly (case folding, an ignore file path) into zlob.Option
// values.
func (c flagConfig) options() ([]zlob.Option, error) {
	var opts []zlob.Option

	if c.CaseFold {
		opts = append(opts, zlob.WithCaseFold(true))
	}

	if c.Gitignore && c.IgnoreFile != "" {
		filter, err := ignorefs.NewFromFile(afero.NewOsFs(), c.IgnoreFile)
		if err != nil {
			return nil, fmt.Errorf("loading ignore file %q: %w", c.IgnoreFile, err)
		}

		opts = append(opts, zlob.WithGitignoreFilter(filter))
	}

	return opts, nil
}

func newMatchCmd() *cobra.Command {
	flags := fnmatchFlags{}

	cmd := &cobra.Command{
		Use:   "match <pattern> <name>",
		Short: "Test whether name matches pattern, without touching the filesystem",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := zlob.NewSingleMatcher(args[0], flags.toFnmatchFlags())

			if m.Match(args[1]) {
				fmt.Fprintln(cmd.OutOrStdout(), "match")

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "no match")
			os.Exit(1)

			return nil
		},
	}

	flags.bind(cmd.Flags())

	return cmd
}

func newIgnoreCheckCmd() *cobra.Command {
	var ignoreFile string
	var isDir bool

	cmd := &cobra.Command{
		Use:   "ignore-check <path>",
		Short: "Check whether path is excluded by a gitignore-style file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := ignorefs.NewFromFile(afero.NewOsFs(), ignoreFile)
			if err != nil {
				return fmt.Errorf("loading ignore file %q: %w", ignoreFile, err)
			}

			if filter.IsIgnored(args[0], isDir) {
				fmt.Fprintln(cmd.OutOrStdout(), "ignored")

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "not ignored")
			os.Exit(1)

			return nil
		},
	}

	cmd.Flags().StringVar(&ignoreFile, "ignore-file", ".gitignore", "path to a gitignore-style file")
	cmd.Flags().BoolVar(&isDir, "dir", false, "treat path as a directory")

	return cmd
}

// fnmatchFlags binds the subset of flags that matter to a single-pattern,
// no-filesystem match: pathname-sensitivity, escapes, extglob, case fold.
type fnmatchFlags struct {
	pathname bool
	noEscape bool
	extglob  bool
	caseFold bool
}

func (f *fnmatchFlags) bind(fs interface{ BoolVar(*bool, string, bool, string) }) {
	fs.BoolVar(&f.pathname, "pathname", true, "'/' is matched only literally")
	fs.BoolVar(&f.noEscape, "no-escape", false, "treat \\ as a literal byte")
	fs.BoolVar(&f.extglob, "extglob", false, "enable extglob constructs")
	fs.BoolVar(&f.caseFold, "case-fold", false, "ASCII case-insensitive matching")
}

func (f fnmatchFlags) toFnmatchFlags() zlob.MatchFlags {
	return zlob.MatchFlags{
		Pathname: f.pathname,
		Escapes:  !f.noEscape,
		Extglob:  f.extglob,
		CaseFold: f.caseFold,
	}
}
