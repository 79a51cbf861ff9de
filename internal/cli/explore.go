package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netvalue/pkg/graph"
	"github.com/matzehuels/netvalue/pkg/network"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) exploreCommand() *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse the Shapley ranking interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.open(ctx, args[0], flags)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.runner.Rank(ctx, s.graph, s.opts)
			if err != nil {
				return err
			}
			total, err := s.runner.Metcalfe(ctx, s.graph, nil, s.opts)
			if err != nil {
				return err
			}

			model := NewRankModel(s.graph, res.Report.Scores, *total.Report.Value)
			_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}

	flags.register(cmd)
	_ = cmd.Flags().MarkHidden("json")

	return cmd
}

// =============================================================================
// RankModel - Interactive ranking browser
// =============================================================================

// RankModel is the bubbletea model for browsing node values.
type RankModel struct {
	Graph  *network.Graph
	Scores []graph.Score
	Total  float64

	Cursor int
	Height int
	Offset int
	ByName bool
}

// NewRankModel creates a ranking browser over scores, which must be sorted
// by descending value.
func NewRankModel(g *network.Graph, scores []graph.Score, total float64) RankModel {
	return RankModel{
		Graph:  g,
		Scores: scores,
		Total:  total,
		Height: 15,
	}
}

func (m RankModel) Init() tea.Cmd {
	return nil
}

func (m RankModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Scores)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m.ByName = !m.ByName
			m.Scores = sortScores(m.Scores, m.ByName)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

// sortScores returns a sorted copy, by node ID or by descending value.
func sortScores(scores []graph.Score, byName bool) []graph.Score {
	out := append([]graph.Score(nil), scores...)
	sort.SliceStable(out, func(i, j int) bool {
		if byName {
			return out[i].Node < out[j].Node
		}
		return out[i].Value > out[j].Value
	})
	return out
}

func (m RankModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shapley Ranking"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s sort  q quit"))
	b.WriteString("\n\n")

	if len(m.Scores) == 0 {
		b.WriteString(listDimStyle.Render("  no nodes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Scores))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		s := m.Scores[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, s.Node, formatValue(s.Value), m.share(s.Value)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Shapley", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Align(lipgloss.Right)
			}
			if m.Offset+row == m.Cursor {
				return base.Inherit(listSelectedStyle)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail(m.Scores[m.Cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Scores))))

	return b.String()
}

func (m RankModel) share(v float64) string {
	if m.Total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*v/m.Total)
}

// detail describes the selected node.
func (m RankModel) detail(s graph.Score) string {
	n, ok := m.Graph.Node(s.Node)
	if !ok {
		return ""
	}
	neighbors := m.Graph.Neighbors(s.Node)
	shown := neighbors
	if len(shown) > 8 {
		shown = shown[:8]
	}
	list := strings.Join(shown, ", ")
	if len(neighbors) > len(shown) {
		list += ", …"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", listSelectedStyle.Render(n.DisplayLabel()), listDimStyle.Render("("+n.ID+")"))
	fmt.Fprintf(&b, "  %s %s  %s %s\n",
		listDimStyle.Render("weight"), strconv.FormatFloat(n.WeightOr(1), 'g', -1, 64),
		listDimStyle.Render("degree"), strconv.Itoa(len(neighbors)))
	if list != "" {
		fmt.Fprintf(&b, "  %s %s\n", listDimStyle.Render("neighbors"), list)
	}
	return b.String()
}
