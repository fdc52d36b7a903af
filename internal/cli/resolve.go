package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/pipeline"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		focus      string
		all        bool
		storeName  string
		asJSON     bool
		refresh    bool
		noRecovery bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [universe.json]",
		Short: "Compute the leaf-to-root order for a focus rule",
		Long: `Resolve computes the documentation order for rules of a universe: every
provider appears before its consumers, with the focus rule last. Cycles are
collapsed and reported as diagnostics rather than failures.

The universe is read from a JSON file, or from the configured store with
--store. Use --all to resolve every rule of the universe as a focus.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && storeName == "" {
				return errors.New(errors.ErrCodeInvalidInput, "a universe file or --store is required")
			}
			if !all && focus == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--focus is required unless --all is set")
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			u, err := c.loadUniverse(cmd, path, storeName)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Focus:           focus,
				DisableRecovery: noRecovery || c.Config.Resolver.DisableRecovery,
				Refresh:         refresh,
			}

			if all {
				prog := newProgress(c.Logger)
				batch, err := runner.ResolveAll(cmd.Context(), u, opts)
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Resolved %d rules", len(batch.Orders)))

				if asJSON {
					return writeJSONOut(batch)
				}
				for _, res := range batch.Orders {
					printSuccess("%s", res.Focus)
					printOrder(res.Order, res.Focus)
					for _, w := range res.Warnings() {
						printWarning("%s", w.Msg)
					}
				}
				for f, ferr := range batch.Failed {
					printError("%s: %s", f, errors.UserMessage(ferr))
				}
				if len(batch.Failed) > 0 {
					return errors.New(errors.ErrCodeInvariantViolation,
						"%d of %d rules failed to resolve", len(batch.Failed), len(u.Rules))
				}
				return nil
			}

			res, err := runner.Resolve(cmd.Context(), u, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSONOut(res)
			}

			printSuccess("Resolved order for %s", StyleHighlight.Render(focus))
			printOrder(res.Order, focus)
			printStats(len(res.Order), res.Graph.EdgeCount(), res.CacheHit)
			if res.Cyclic {
				printWarning("%s is part of a dependency cycle; co-members are ordered before it", focus)
			}
			for _, w := range res.Warnings() {
				printWarning("%s", w.Msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "f", "", "rule to compute the order for")
	cmd.Flags().BoolVar(&all, "all", false, "resolve every rule of the universe")
	cmd.Flags().StringVar(&storeName, "store", "", "load the universe from the configured store")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full result as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&noRecovery, "no-recovery", false, "disable the provider-recovery heuristic")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

func writeJSONOut(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
