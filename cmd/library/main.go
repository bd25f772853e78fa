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
	"github.com/smileynet/recordkeep/internal/library"
	"github.com/smileynet/recordkeep/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for library.
type CLI struct {
	cli.Globals `embed:""`

	Menu   MenuCmd   `cmd:"" default:"1" help:"Interactive menu (default)."`
	Add    AddCmd    `cmd:"" help:"Add a book."`
	Borrow BorrowCmd `cmd:"" help:"Borrow a book by ISBN."`
	Return ReturnCmd `cmd:"" help:"Return a book by ISBN."`
	Search SearchCmd `cmd:"" help:"Search books by title or author."`
	List   ListCmd   `cmd:"" help:"List all books."`
	Browse BrowseCmd `cmd:"" help:"Browse books in a table; b borrows, r returns."`
	Schema SchemaCmd `cmd:"" help:"Print the JSON Schema of the library file."`
}

// session is the wiring shared by the commands of one run.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	lib    *library.Library
}

// open resolves setup, then loads the catalog once for the rest of the run.
func open(g *cli.Globals) (*session, error) {
	env, err := g.Setup(cli.LibraryFile)
	if err != nil {
		return nil, err
	}
	env.Logger.Debug("library starting", "version", version, "file", env.Path)

	lib, err := library.Open(store.NewFileStore[library.Book](env.Path, store.WithLogger(env.Logger)))
	if err != nil {
		return nil, err
	}
	return &session{cfg: env.Config, logger: env.Logger, lib: lib}, nil
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

// AddCmd adds one book.
type AddCmd struct {
	Title  string `arg:"" help:"Book title."`
	Author string `arg:"" help:"Book author."`
	ISBN   string `arg:"" name:"isbn" help:"ISBN, format XXXX-XXXX-XXXX."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return addBook(console.NewPrinter(os.Stdout), s, c.Title, c.Author, c.ISBN)
}

// BorrowCmd marks a book as borrowed.
type BorrowCmd struct {
	ISBN string `arg:"" name:"isbn" help:"ISBN of the book to borrow."`
}

// Run executes the borrow command.
func (c *BorrowCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return borrowBook(console.NewPrinter(os.Stdout), s, c.ISBN)
}

// ReturnCmd marks a book as available again.
type ReturnCmd struct {
	ISBN string `arg:"" name:"isbn" help:"ISBN of the book to return."`
}

// Run executes the return command.
func (c *ReturnCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return returnBook(console.NewPrinter(os.Stdout), s, c.ISBN)
}

// SearchCmd prints books matching a keyword.
type SearchCmd struct {
	Keyword string `arg:"" help:"Case-insensitive fragment."`
	By      string `help:"Field to search: title or author." default:"title"`
}

// Run executes the search command.
func (c *SearchCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return searchBooks(console.NewPrinter(os.Stdout), s, c.Keyword, c.By)
}

// ListCmd prints every book.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	listBooks(console.NewPrinter(os.Stdout), s)
	return nil
}

// BrowseCmd opens the book table.
type BrowseCmd struct{}

// Run executes the browse command.
func (c *BrowseCmd) Run(g *cli.Globals) error {
	s, err := open(g)
	if err != nil {
		return err
	}
	return browse.Show(bookTable(s), bookActions(s), browse.Options{
		Writer:     os.Stdout,
		ForcePlain: s.cfg.Display.Plain,
	})
}

// SchemaCmd prints the library file JSON Schema.
type SchemaCmd struct{}

// Run executes the schema command.
func (c *SchemaCmd) Run() error {
	return printSchema(os.Stdout)
}

func printSchema(w io.Writer) error {
	data, err := store.Schema[library.Book]("library_books.json")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

func main() {
	var root CLI
	ctx := kong.Parse(&root,
		kong.Name("library"),
		kong.Description("Keep a library catalog in a local JSON file."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	os.Exit(cli.Report(os.Stderr, ctx.Run(&root.Globals)))
}
