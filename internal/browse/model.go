package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the number of lines used by everything except table rows.
const chromeHeight = 7

// Model is the Bubble Tea model for browsing a Table.
type Model struct {
	source  Table
	actions []Action
	table   table.Model
	help    help.Model
	keys    keyMap
	status  string
	err     error
}

// NewModel loads the rows of t and builds a browser model.
func NewModel(t Table, actions ...Action) (Model, error) {
	rows, err := t.Rows()
	if err != nil {
		return Model{}, err
	}

	widths := columnWidths(t.Columns, rows)
	cols := make([]table.Column, len(t.Columns))
	for i, title := range t.Columns {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(toTableRows(rows)),
		table.WithFocused(true),
		table.WithHeight(min(max(len(rows), 1), 20)),
		table.WithStyles(tableStyles()),
	)

	return Model{
		source:  t,
		actions: actions,
		table:   tbl,
		help:    help.New(),
		keys:    newKeyMap(tbl.KeyMap, actions),
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-chromeHeight, 1))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		for _, a := range m.actions {
			if key.Matches(msg, a.Binding) {
				return m.runAction(a)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// runAction applies a to the highlighted row and reloads the rows.
func (m Model) runAction(a Action) (tea.Model, tea.Cmd) {
	row := m.table.SelectedRow()
	if row == nil {
		m.status = "Nothing selected."
		return m, nil
	}

	status, err := a.Do(row)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.status = status

	rows, err := m.source.Rows()
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.table.SetRows(toTableRows(rows))
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.source.Title))
	b.WriteString("\n")
	if len(m.table.Rows()) == 0 {
		b.WriteString(statusStyle.Render("no records"))
	} else {
		b.WriteString(frameStyle.Render(m.table.View()))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Status returns the last action result line.
func (m Model) Status() string {
	return m.status
}

func toTableRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r)
	}
	return out
}
