package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/resolve"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var (
		focus      string
		storeName  string
		noRecovery bool
	)

	cmd := &cobra.Command{
		Use:   "verify [universe.json]",
		Short: "Recompute and check orderings for a universe",
		Long: `Verify resolves each focus rule without caching and checks the ordering
invariant: the focus must come last in its own leaf-to-root order. Cyclic
focuses are reported as diagnostics, not failures.

With --focus only that rule is checked; otherwise every rule of the universe
is verified.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && storeName == "" {
				return errors.New(errors.ErrCodeInvalidInput, "a universe file or --store is required")
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			u, err := c.loadUniverse(cmd, path, storeName)
			if err != nil {
				return err
			}

			focuses := u.RuleNames()
			if focus != "" {
				focuses = []string{focus}
			}

			resolver := resolve.NewResolver(noRecovery || c.Config.Resolver.DisableRecovery)
			relation, reverse := u.Relation(), u.Reverse()

			failed := 0
			for _, f := range focuses {
				res, err := resolver.Resolve(relation, reverse, f)
				if err != nil {
					printError("%s: %s", f, errors.UserMessage(err))
					failed++
					continue
				}

				switch {
				case res.Cyclic:
					comp := resolve.FocusComponent(f, res.Graph)
					printWarning("%s: ordered, but cyclic with [%s]", f, strings.Join(comp, ", "))
				default:
					printSuccess("%s: %d rules in order", f, len(res.Order))
				}
				for _, w := range res.Warnings() {
					printDetail("%s", w.Msg)
				}
			}

			if failed > 0 {
				return errors.New(errors.ErrCodeInvariantViolation,
					"%d of %d focus rules failed verification", failed, len(focuses))
			}
			printNewline()
			printInfo("Verified %d focus rules", len(focuses))
			return nil
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "f", "", "verify a single focus rule")
	cmd.Flags().StringVar(&storeName, "store", "", "load the universe from the configured store")
	cmd.Flags().BoolVar(&noRecovery, "no-recovery", false, "disable the provider-recovery heuristic")

	return cmd
}
