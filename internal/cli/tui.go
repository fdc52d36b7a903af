package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/pipeline"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/rule"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// RuleListModel - Interactive rule selection
// =============================================================================

// ruleEntry is a single row in the rule picker.
type ruleEntry struct {
	Name      string
	Label     string
	Providers int
	Consumers int
}

// RuleListModel is the bubbletea model for interactive rule selection.
type RuleListModel struct {
	Universe string
	Rules    []ruleEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewRuleListModel creates a rule list model from a universe.
func NewRuleListModel(u *rule.Universe) RuleListModel {
	providers := map[string]int{}
	consumers := map[string]int{}
	for _, req := range u.Requires {
		providers[req.Consumer]++
		consumers[req.Provider]++
	}

	entries := make([]ruleEntry, 0, len(u.Rules))
	for _, name := range u.RuleNames() {
		r, _ := u.Lookup(name)
		entries = append(entries, ruleEntry{
			Name:      name,
			Label:     r.DisplayLabel(),
			Providers: providers[name],
			Consumers: consumers[name],
		})
	}

	return RuleListModel{
		Universe: u.Name,
		Rules:    entries,
		Height:   15,
	}
}

func (m RuleListModel) Init() tea.Cmd {
	return nil
}

func (m RuleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rules)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Rules[m.Cursor].Name
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RuleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Rule"))
	b.WriteString(listDimStyle.Render("  " + m.Universe))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ resolve  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rules) {
		end = len(m.Rules)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rules[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		label := r.Label
		if label == r.Name {
			label = "—"
		}

		rows = append(rows, []string{
			cursor, r.Name, label,
			fmt.Sprintf("%d", r.Providers),
			fmt.Sprintf("%d", r.Consumers),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Rule", "Label", "Requires", "Required by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rules) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				if col < 2 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rules))))

	return b.String()
}

// =============================================================================
// tui command
// =============================================================================

// tuiCommand creates the interactive rule picker command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		storeName string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "tui [universe.json]",
		Short: "Interactively pick a rule and resolve it",
		Args:  cobra.MaximumNArgs(1),
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
			if len(u.Rules) == 0 {
				return errors.New(errors.ErrCodeInvalidUniverse, "universe %q has no rules", u.Name)
			}

			p := tea.NewProgram(NewRuleListModel(u))
			final, err := p.Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run picker")
			}

			model, ok := final.(RuleListModel)
			if !ok || model.Selected == "" {
				printInfo("No rule selected")
				return nil
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Resolve(cmd.Context(), u, pipeline.Options{
				Focus:           model.Selected,
				DisableRecovery: c.Config.Resolver.DisableRecovery,
			})
			if err != nil {
				return err
			}

			printNewline()
			printSuccess("Resolved %s", StyleHighlight.Render(model.Selected))
			printOrder(res.Order, model.Selected)
			printStats(len(res.Order), res.Graph.EdgeCount(), res.CacheHit)
			for _, w := range res.Warnings() {
				printWarning("%s", w.Msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "load the universe from the configured store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")

	return cmd
}
