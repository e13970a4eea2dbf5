package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/spritekit/pkg/atlas"
)

var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

var manifestHeaders = []string{"Name", "X", "Y", "Width", "Height"}

// manifestRows formats entries as table rows.
func manifestRows(entries atlas.Manifest) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Name,
			strconv.Itoa(e.X),
			strconv.Itoa(e.Y),
			strconv.Itoa(e.Width),
			strconv.Itoa(e.Height),
		}
	}
	return rows
}

// renderManifestTable renders entries as a bordered table.
func renderManifestTable(entries atlas.Manifest) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(manifestHeaders...).
		Rows(manifestRows(entries)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorCyan)
		}).
		Render()
}

// =============================================================================
// ManifestModel - Interactive manifest browser
// =============================================================================

// ManifestModel is the bubbletea model for browsing atlas entries.
type ManifestModel struct {
	Entries  atlas.Manifest
	Visible  atlas.Manifest
	Cursor   int
	Offset   int
	Height   int
	Filter   string
	Editing  bool
	Selected *atlas.Entry
}

// NewManifestModel creates a browser over entries.
func NewManifestModel(entries atlas.Manifest) ManifestModel {
	return ManifestModel{
		Entries: entries,
		Visible: entries,
		Height:  15,
	}
}

func (m ManifestModel) Init() tea.Cmd {
	return nil
}

func (m ManifestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Editing {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "/":
			m.Editing = true
		case "enter":
			if len(m.Visible) == 0 {
				return m, nil
			}
			e := m.Visible[m.Cursor]
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.moveCursor(0)
	}
	return m, nil
}

// updateFilter edits the name filter; enter or esc leaves filter mode.
func (m ManifestModel) updateFilter(msg tea.KeyMsg) ManifestModel {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.Editing = false
		return m
	case tea.KeyCtrlC:
		m.Editing = false
		m.Filter = ""
	case tea.KeyBackspace:
		if m.Filter != "" {
			r := []rune(m.Filter)
			m.Filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.Filter += string(msg.Runes)
	default:
		return m
	}
	m.Visible = m.Entries.Filter(m.Filter)
	m.Cursor, m.Offset = 0, 0
	return m
}

// moveCursor moves by delta, keeping the cursor inside the scroll window.
func (m *ManifestModel) moveCursor(delta int) {
	if len(m.Visible) == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Visible)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ManifestModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Atlas Manifest"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  / filter  ⏎ select  q quit"))
	b.WriteString("\n")
	if m.Editing || m.Filter != "" {
		b.WriteString("filter: " + StyleValue.Render(m.Filter))
		if m.Editing {
			b.WriteString(StyleDim.Render("▏"))
		}
	}
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Visible))
	page := m.Visible[m.Offset:end]
	rows := manifestRows(page)
	for i := range rows {
		cursor := "  "
		if m.Offset+i == m.Cursor {
			cursor = "▸ "
		}
		rows[i][0] = cursor + rows[i][0]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(manifestHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	pos := 0
	if len(m.Visible) > 0 {
		pos = m.Cursor + 1
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d of %d]", pos, len(m.Visible), len(m.Entries))))

	return b.String()
}
