package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/smileynet/recordkeep/internal/browse"
	"github.com/smileynet/recordkeep/internal/cli"
	"github.com/smileynet/recordkeep/internal/config"
	"github.com/smileynet/recordkeep/internal/console"
	"github.com/smileynet/recordkeep/internal/contact"
	"github.com/smileynet/recordkeep/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contacts.
type CLI struct {
	cli.Globals `embed:""`

	Menu   MenuCmd   `cmd:"" default:"1" help:"Interactive menu (default)."`
	Add    AddCmd    `cmd:"" help:"Add a contact."`
	List   ListCmd   `cmd:"" help:"List all contacts."`
	Search SearchCmd `cmd:"" help:"Search contacts by name."`
	Delete DeleteCmd `cmd:"" help:"Delete every contact whose name matches."`
	Browse BrowseCmd `cmd:"" help:"Browse contacts in a table."`
	Schema SchemaCmd `cmd:"" help:"Print the JSON Schema of the contacts file."`
}

// session is the wiring shared by the commands of one run.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	book   *contact.Book
}

// open resolves setup into a session.
func open(g *cli.Globals) (*session, error) {
	env, err := g.Setup(cli.ContactsFile)
	if err != nil {
		return nil, err
	}
	env.Logger.Debug("contacts starting", "version", version, "file", env.Path)

	st := store.NewFileStore[contact.Contact](env.Path, store.WithLogger(env.Logger))
	return &session{cfg: env.Config, logger: env.Logger, book: contact.NewBook(st)}, nil
}

// MenuCmd runs the interactive numbered menu.
type MenuCmd struct{}

// Run executes the menu command.
func (c *MenuCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return runMenu(os.Stdin, os.Stdout, s)
}

// AddCmd adds one contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Email string `arg:"" help:"Email address."`
	Phone string `arg:"" help:"Phone number, format 017-12345678."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return addContact(console.NewPrinter(os.Stdout), s, c.Name, c.Email, c.Phone)
}

// ListCmd prints every contact.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return listContacts(console.NewPrinter(os.Stdout), s)
}

// SearchCmd prints contacts whose name contains a query.
type SearchCmd struct {
	Query string `arg:"" help:"Case-insensitive name fragment."`
}

// Run executes the search command.
func (c *SearchCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return searchContacts(console.NewPrinter(os.Stdout), s, c.Query)
}

// DeleteCmd removes every contact whose name contains a query.
type DeleteCmd struct {
	Query string `arg:"" help:"Case-insensitive name fragment."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return deleteContacts(console.NewPrinter(os.Stdout), s, c.Query)
}

// BrowseCmd opens the contact table.
type BrowseCmd struct{}

// Run executes the browse command.
func (c *BrowseCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return browse.Show(contactTable(s), nil, browse.Options{
		Writer:     os.Stdout,
		ForcePlain: s.cfg.Display.Plain,
	})
}

// SchemaCmd prints the contacts file JSON Schema.
type SchemaCmd struct{}

// Run executes the schema command.
func (c *SchemaCmd) Run() error {
	return printSchema(os.Stdout)
}

func printSchema(w io.Writer) error {
	data, err := store.Schema[contact.Contact]("contacts.json")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

func main() {
	var root CLI
	ctx := kong.Parse(&root,
		kong.Name("contacts"),
		kong.Description("Keep a contact book in a local JSON file."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	os.Exit(cli.Report(os.Stderr, ctx.Run(&root.Globals)))
}
