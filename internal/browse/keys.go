package browse

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// keyMap holds the bindings shown in the help bar.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
	Actions []key.Binding
}

func newKeyMap(tk table.KeyMap, actions []Action) keyMap {
	k := keyMap{
		Up:   tk.LineUp,
		Down: tk.LineDown,
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	for _, a := range actions {
		k.Actions = append(k.Actions, a.Binding)
	}
	return k
}

// ShortHelp returns the bindings for the help bar.
func (k keyMap) ShortHelp() []key.Binding {
	b := []key.Binding{k.Up, k.Down}
	b = append(b, k.Actions...)
	return append(b, k.Quit)
}

// FullHelp returns the bindings grouped for expanded help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		k.Actions,
		{k.Quit},
	}
}
