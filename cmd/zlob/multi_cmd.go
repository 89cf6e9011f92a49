package main

import (
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/dmtrKovalenko/zlob"
)

// newMultiCmd drives N independent glob calls concurrently: each pattern
// gets its own zlob.Glob call and its own Result, no shared aggregator, so
// calls never contend on state. Grounded on sourcegraph/conc's
// conc.WaitGroup, a structured-concurrency dependency pulled in indirectly
// through the viper dependency chain and used here directly for the first
// time.
func newMultiCmd() *cobra.Command {
	cfg := &flagConfig{}

	cmd := &cobra.Command{
		Use:   "multi <pattern> [pattern...]",
		Short: "Expand multiple glob patterns concurrently",
		Args:  cobra.MinimumNArgs(1),
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

			flag := cfg.toFlag()

			results := make([]patternResult, len(args))

			var wg conc.WaitGroup
			var mu sync.Mutex

			for i, pat := range args {
				i, pat := i, pat

				wg.Go(func() {
					res, err := zlob.Glob(pat, flag, opts...)

					mu.Lock()
					results[i] = patternResult{pattern: pat, res: res, err: err}
					mu.Unlock()
				})
			}

			wg.Wait()

			for _, r := range results {
				if r.err != nil && r.err != zlob.ErrNoMatch {
					return fmt.Errorf("pattern %q: %w", r.pattern, r.err)
				}

				for _, p := range r.res.Matches() {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}

				logf("pattern %q matched %d path(s)", r.pattern, r.res.Pathc)
			}

			return nil
		},
	}

	bindGlobFlags(cmd.Flags(), cfg)

	return cmd
}

type patternResult struct {
	pattern string
	res     *zlob.Result
	err     error
}
