// Package console drives the interactive menus: line prompts on an input
// stream and styled result messages on an output stream.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Prompter reads one answer per line from an input stream.
type Prompter struct {
	sc *bufio.Scanner
	w  io.Writer
}

// NewPrompter returns a Prompter that writes prompts to w and reads from r.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(r), w: w}
}

// Ask writes prompt and returns the next input line without its line ending.
// ok is false once the input is exhausted or unreadable; Err tells the two
// apart.
func (p *Prompter) Ask(prompt string) (answer string, ok bool) {
	_, _ = fmt.Fprint(p.w, prompt)
	if !p.sc.Scan() {
		_, _ = fmt.Fprintln(p.w)
		return "", false
	}
	return strings.TrimRight(p.sc.Text(), "\r"), true
}

// Err returns the read error that stopped input, or nil at a clean end of
// input. A line longer than the scanner buffer is reported as
// bufio.ErrTooLong.
func (p *Prompter) Err() error {
	if err := p.sc.Err(); err != nil {
		return fmt.Errorf("console: reading input: %w", err)
	}
	return nil
}

// Printer writes result messages with lipgloss styles. Colors follow the
// capabilities of the destination writer.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		failure: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
	}
}

// Success prints an operation confirmation.
func (p *Printer) Success(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.success.Render(fmt.Sprintf(format, args...)))
}

// Failure prints a rejected operation or a miss.
func (p *Printer) Failure(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.failure.Render(fmt.Sprintf(format, args...)))
}

// Muted prints secondary information such as an empty listing.
func (p *Printer) Muted(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(format, args...)))
}

// Line prints an unstyled line.
func (p *Printer) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}
