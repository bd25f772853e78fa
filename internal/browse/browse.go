// Package browse shows a record collection as a scrollable table, either as
// a Bubble Tea program on a terminal or as plain text otherwise.
package browse

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
)

// Table describes the records to show.
type Table struct {
	Title   string
	Columns []string
	// Rows is called when the browser opens and again after every action.
	Rows func() ([][]string, error)
}

// Action binds a key to an operation on the highlighted row.
type Action struct {
	Binding key.Binding
	// Do returns a status line to display. A non-nil error is fatal and
	// ends the browser.
	Do func(row []string) (string, error)
}

// Options configures Show.
type Options struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Show renders t. On a terminal it starts the interactive browser with
// actions; otherwise it prints the rows once and actions are unavailable.
func Show(t Table, actions []Action, opts Options) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ForcePlain || !isTTY(opts.Writer) {
		return RenderPlain(opts.Writer, t)
	}

	m, err := NewModel(t, actions...)
	if err != nil {
		return err
	}
	return run(tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(opts.Writer)))
}

// run executes the program and surfaces a fatal action error held by the
// final model.
func run(prog teaRunner) error {
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// RenderPlain writes t as a bordered text table, or a placeholder line when
// there are no rows.
func RenderPlain(w io.Writer, t Table) error {
	rows, err := t.Rows()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(w, "%s: no records.\n", t.Title)
		return nil
	}

	tbl := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Columns...).
		Rows(rows...)
	_, _ = fmt.Fprintln(w, t.Title)
	_, _ = fmt.Fprintln(w, tbl.String())
	return nil
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
