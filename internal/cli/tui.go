package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/causalid/pkg/identify"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// NodeListModel - Interactive intervention selection
// =============================================================================

// nodeRow is one selectable node.
type nodeRow struct {
	Index      int
	Label      string
	Component  int
	Parents    []string
	Children   []string
	Confounded bool
}

// NodeListModel is the bubbletea model for picking the intervened node.
type NodeListModel struct {
	Rows     []nodeRow
	Cursor   int
	Selected *int
	Height   int
	Offset   int
}

// NewNodeListModel lists the nodes of m in normalized order.
func NewNodeListModel(m *identify.Model) NodeListModel {
	g := m.Graph()
	comp := make([]int, g.Len())
	for ci, c := range m.Components() {
		for v := range c.All() {
			comp[v] = ci
		}
	}

	rows := make([]nodeRow, g.Len())
	for v := range g.Len() {
		rows[v] = nodeRow{
			Index:      v,
			Label:      m.Label(v),
			Component:  comp[v],
			Parents:    m.Names(smcm.NewNodeSet(g.Parents(v)...)),
			Children:   m.Names(smcm.NewNodeSet(g.Children(v)...)),
			Confounded: len(g.Spouses(v)) > 0,
		}
	}
	return NodeListModel{Rows: rows, Height: 15}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) == 0 {
				return m, nil
			}
			x := m.Rows[m.Cursor].Index
			m.Selected = &x
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Intervention"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		confounded := ""
		if r.Confounded {
			confounded = "↔"
		}
		rows = append(rows, []string{
			cursor,
			r.Label,
			fmt.Sprintf("C%d", r.Component),
			confounded,
			joinOrDash(r.Parents),
			joinOrDash(r.Children),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Comp", "U", "Parents", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				if col < 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// pickIntervention runs the node picker and returns the chosen node, or
// false if the user quit without choosing.
func pickIntervention(m *identify.Model) (int, bool, error) {
	final, err := tea.NewProgram(NewNodeListModel(m)).Run()
	if err != nil {
		return 0, false, fmt.Errorf("node picker: %w", err)
	}
	sel := final.(NodeListModel).Selected
	if sel == nil {
		return 0, false, nil
	}
	return *sel, true, nil
}

// =============================================================================
// Component table
// =============================================================================

// componentTable renders the c-components of m with their members and
// factors, one row per component.
func componentTable(m *identify.Model, factors []string) string {
	rows := make([][]string, 0, len(factors))
	for ci, c := range m.Components() {
		rows = append(rows, []string{
			fmt.Sprintf("C%d", ci),
			strings.Join(m.Names(c), ", "),
			factors[ci],
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Members", "Factor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// =============================================================================
// Helpers
// =============================================================================

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, ", ")
}

// componentSizes summarizes a partition as "{0, 2} {1}".
func componentSizes(cs []smcm.NodeSet) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
