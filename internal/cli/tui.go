package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/dataset"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// WordListModel - Interactive layout browser
// =============================================================================

// wordRow is one table row: a placed word or a dropped one.
type wordRow struct {
	text    string
	weight  float64
	size    int
	initial int
	x, y    float64
	w, h    float64
	color   string
	dropped bool
}

// WordListModel is the bubbletea model for browsing a layout.
type WordListModel struct {
	Layout  cloud.Layout
	Summary dataset.Summary
	Rows    []wordRow
	Cursor  int
	Height  int
	Offset  int

	// ShowDropped switches the table to the words that did not fit.
	ShowDropped bool
}

// NewWordListModel creates a new word list model.
func NewWordListModel(l cloud.Layout, summary dataset.Summary) WordListModel {
	m := WordListModel{Layout: l, Summary: summary, Height: 15}
	m.Rows = m.rows()
	return m
}

func (m WordListModel) rows() []wordRow {
	if m.ShowDropped {
		rows := make([]wordRow, len(m.Layout.Dropped))
		for i, d := range m.Layout.Dropped {
			rows[i] = wordRow{text: d.Text, weight: d.Weight, initial: d.Size, dropped: true}
		}
		return rows
	}
	rows := make([]wordRow, len(m.Layout.Words))
	for i, w := range m.Layout.Words {
		rows[i] = wordRow{
			text: w.Text, weight: w.Weight, size: w.Size, initial: w.InitialSize,
			x: w.X, y: w.Y, w: w.Width, h: w.Height, color: w.Color,
		}
	}
	return rows
}

func (m WordListModel) Init() tea.Cmd {
	return nil
}

func (m WordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "tab", "d":
			m.ShowDropped = !m.ShowDropped
			m.Rows = m.rows()
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m WordListModel) View() string {
	var b strings.Builder

	title := "Placed Words"
	if m.ShowDropped {
		title = "Dropped Words"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab placed/dropped  q quit"))
	b.WriteString("\n")
	b.WriteString(summaryLine(m.Layout, m.Summary))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(wordTable(m.Rows[m.Offset:end], m.Cursor-m.Offset).Render())
	b.WriteString("\n\n")
	if len(m.Rows) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	} else {
		b.WriteString(listDimStyle.Render("  (none)"))
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// wordTable renders rows as a rounded lipgloss table. cursor is the index of
// the highlighted row, or -1 for none.
func wordTable(rows []wordRow, cursor int) *table.Table {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		if r.dropped {
			cells[i] = []string{marker, r.text, formatWeight(r.weight), strconv.Itoa(r.initial), "—", "—", "dropped"}
			continue
		}
		cells[i] = []string{
			marker, r.text, formatWeight(r.weight),
			sizeCell(r.size, r.initial),
			fmt.Sprintf("%.0f,%.0f", r.x, r.y),
			fmt.Sprintf("%.0f×%.0f", r.w, r.h),
			r.color,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Word", "Weight", "Size", "Center", "Box", "Color").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			r := rows[row]
			base := lipgloss.NewStyle()
			if col == 6 && r.color != "" {
				base = base.Foreground(lipgloss.Color(r.color))
			}
			switch {
			case row == cursor:
				return base.Bold(true).Foreground(colorCyan)
			case r.dropped:
				return base.Foreground(colorYellow)
			case r.size < r.initial:
				return base.Foreground(colorGray)
			}
			return base
		})
}

// sizeCell shows "size" or "size←initial" for words that had to shrink.
func sizeCell(size, initial int) string {
	if size < initial {
		return fmt.Sprintf("%d←%d", size, initial)
	}
	return strconv.Itoa(size)
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', 6, 64)
}

func summaryLine(l cloud.Layout, s dataset.Summary) string {
	parts := []string{
		fmt.Sprintf("%.0f×%.0f", l.Width, l.Height),
		fmt.Sprintf("%d placed", len(l.Words)),
		fmt.Sprintf("%d dropped", len(l.Dropped)),
		fmt.Sprintf("%d passes", l.Passes),
	}
	if s.Count > 0 {
		parts = append(parts, fmt.Sprintf("weights %s–%s (median %s)",
			formatWeight(s.Min), formatWeight(s.Max), formatWeight(s.Median)))
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}
