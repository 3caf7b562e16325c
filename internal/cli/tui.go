package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/nifstream/pkg/nif"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// blockRow is one display line of the block browser.
type blockRow struct {
	index    int
	typeName string
	name     string
	root     bool
}

// blockListModel is the bubbletea model for interactive block browsing.
type blockListModel struct {
	rows     []blockRow
	cursor   int
	selected int
	height   int
	offset   int
}

// newBlockListModel builds the browser model from a decoded graph.
func newBlockListModel(g *nif.Graph) blockListModel {
	ctx := nif.NewContext(g.Version, g.UserVersion)
	rootSet := make(map[nif.Block]bool, len(g.Roots))
	for _, b := range g.Roots {
		rootSet[b] = true
	}

	rows := make([]blockRow, len(g.Blocks))
	for i, b := range g.Blocks {
		row := blockRow{index: i, typeName: b.TypeName(), root: rootSet[b]}
		if names := nif.BlockStrings(b, ctx); len(names) > 0 {
			row.name = names[0]
		}
		rows[i] = row
	}
	return blockListModel{rows: rows, selected: -1, height: 15}
}

func (m blockListModel) Init() tea.Cmd {
	return nil
}

func (m blockListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Height > 5 {
			m.height = msg.Height - 4
		}
	}
	return m, nil
}

func (m blockListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Blocks") + "\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		line := fmt.Sprintf("%4d  %s", row.index, row.typeName)
		if row.name != "" {
			line += " " + row.name
		}
		if row.root {
			line += " (root)"
		}
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("› "+line) + "\n")
		} else {
			b.WriteString(listNormalStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString(listDimStyle.Render("\n↑/↓ move · enter select · q quit") + "\n")
	return b.String()
}
