package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/resolve"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/resolve/dot"
)

// Output formats for the graph command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphCommand creates the graph export command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		focus      string
		storeName  string
		output     string
		format     string
		orderOnly  bool
		noRecovery bool
	)

	cmd := &cobra.Command{
		Use:   "graph [universe.json]",
		Short: "Export the scoped dependency graph as DOT or SVG",
		Long: `Graph renders the sanitized dependency graph for a focus rule. Members of
collapsed cycles share a dashed cluster, and the focus rule is highlighted.
With --order-only, only the computed order is drawn as a chain.

Without --output, the DOT source is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && storeName == "" {
				return errors.New(errors.ErrCodeInvalidInput, "a universe file or --store is required")
			}
			if focus == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--focus is required")
			}
			if format != formatDOT && format != formatSVG {
				return errors.New(errors.ErrCodeUnsupported, "unknown format %q (dot, svg)", format)
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			u, err := c.loadUniverse(cmd, path, storeName)
			if err != nil {
				return err
			}

			resolver := resolve.NewResolver(noRecovery || c.Config.Resolver.DisableRecovery)
			res, err := resolver.Resolve(u.Relation(), u.Reverse(), focus)
			if err != nil {
				return err
			}

			src := dot.ToDOT(res)
			if orderOnly {
				src = dot.OrderDOT(res)
			}

			var data []byte
			switch format {
			case formatSVG:
				if data, err = dot.RenderSVG(src); err != nil {
					return err
				}
			default:
				data = []byte(src)
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.Wrap(errors.ErrCodeStorage, err, "write %s", output)
			}
			printSuccess("Exported %s graph for %s", strings.ToUpper(format), StyleHighlight.Render(focus))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "f", "", "rule to scope the graph to")
	cmd.Flags().StringVar(&storeName, "store", "", "load the universe from the configured store")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", formatDOT, "output format: dot or svg")
	cmd.Flags().BoolVar(&orderOnly, "order-only", false, "draw only the computed order chain")
	cmd.Flags().BoolVar(&noRecovery, "no-recovery", false, "disable the provider-recovery heuristic")

	return cmd
}
