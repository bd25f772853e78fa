package console

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected marks an operation that was refused after its reason was
// already printed, such as a validation failure or a lookup miss. The menu
// loop continues past it.
var ErrRejected = errors.New("operation rejected")

// Option is one numbered menu entry.
type Option struct {
	Key   string
	Label string
	// Run performs the action. Returning ErrRejected keeps the loop going;
	// any other error ends it.
	Run func() error
}

// Menu is a numbered choice loop. Choosing ExitKey or exhausting the input
// ends the loop without error.
type Menu struct {
	Options []Option
	ExitKey string
	Exit    string // label for ExitKey
}

// Run displays the menu and dispatches choices until exit or end of
// input. An input read error ends the loop and is returned.
func (m Menu) Run(p *Prompter, out *Printer) error {
	prompt := fmt.Sprintf("Enter your choice (1-%s): ", m.ExitKey)
	for {
		out.Line("\n%s", m.render())

		choice, ok := p.Ask(prompt)
		if !ok {
			return p.Err()
		}
		choice = strings.TrimSpace(choice)
		if choice == m.ExitKey {
			return nil
		}

		opt, found := m.lookup(choice)
		if !found {
			out.Failure("Invalid choice. Please enter a number between 1 and %s.", m.ExitKey)
			continue
		}
		if err := opt.Run(); err != nil && !errors.Is(err, ErrRejected) {
			return err
		}
		if err := p.Err(); err != nil {
			return err
		}
	}
}

func (m Menu) render() string {
	lines := make([]string, 0, len(m.Options)+1)
	for _, o := range m.Options {
		lines = append(lines, fmt.Sprintf("%s. %s", o.Key, o.Label))
	}
	lines = append(lines, fmt.Sprintf("%s. %s", m.ExitKey, m.Exit))
	return strings.Join(lines, "\n")
}

func (m Menu) lookup(key string) (Option, bool) {
	for _, o := range m.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}
