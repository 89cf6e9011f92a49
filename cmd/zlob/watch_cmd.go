package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dmtrKovalenko/zlob"
	"github.com/dmtrKovalenko/zlob/fnmatch"
	"github.com/dmtrKovalenko/zlob/pattern"
)

// newWatchCmd re-runs a glob whenever a directory on its computed root set
// changes. The root set is the pattern's literal prefix directory
// (pattern.Analyze's LiteralPrefix) — the same directory the traversal
// engine itself would open first.
func newWatchCmd() *cobra.Command {
	cfg := &flagConfig{}

	cmd := &cobra.Command{
		Use:   "watch <pattern>",
		Short: "Re-run a glob whenever its root directory changes",
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

			pat := args[0]
			flag := cfg.toFlag()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()

			root := watchRoot(pat)
			if err := watcher.Add(root); err != nil {
				return fmt.Errorf("watching %q: %w", root, err)
			}

			runOnce := func() error {
				res, err := zlob.Glob(pat, flag, opts...)
				if err != nil && err != zlob.ErrNoMatch {
					return err
				}

				for _, p := range res.Matches() {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}

				return nil
			}

			if err := runOnce(); err != nil {
				return err
			}

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}

					logf("change detected: %s", event)

					if err := runOnce(); err != nil {
						return err
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}

					return fmt.Errorf("watcher: %w", err)
				}
			}
		},
	}

	bindGlobFlags(cmd.Flags(), cfg)

	return cmd
}

func watchRoot(pat string) string {
	info := pattern.Analyze(pat, fnmatch.Flags{Pathname: true})
	if info.IsAbsolute {
		return "/" + info.LiteralPrefix
	}

	if info.LiteralPrefix != "" {
		return info.LiteralPrefix
	}

	return "."
}
