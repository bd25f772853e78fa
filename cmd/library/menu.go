package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"

	"github.com/smileynet/recordkeep/internal/browse"
	"github.com/smileynet/recordkeep/internal/console"
	"github.com/smileynet/recordkeep/internal/library"
	"github.com/smileynet/recordkeep/internal/record"
)

// runMenu drives the numbered library menu until exit or end of input.
func runMenu(in io.Reader, w io.Writer, s *session) error {
	p := console.NewPrompter(in, w)
	out := console.NewPrinter(w)

	menu := console.Menu{
		Options: []console.Option{
			{Key: "1", Label: "Add a Book", Run: func() error {
				title, ok1 := p.Ask("Enter the book title: ")
				author, ok2 := p.Ask("Enter the book author: ")
				isbn, ok3 := p.Ask("Enter the book ISBN (format: XXXX-XXXX-XXXX): ")
				if !ok1 || !ok2 || !ok3 {
					return nil
				}
				return addBook(out, s, title, author, isbn)
			}},
			{Key: "2", Label: "Borrow a Book", Run: func() error {
				isbn, ok := p.Ask("Enter ISBN of the book to borrow: ")
				if !ok {
					return nil
				}
				return borrowBook(out, s, isbn)
			}},
			{Key: "3", Label: "Return a Book", Run: func() error {
				isbn, ok := p.Ask("Enter ISBN of the book to return: ")
				if !ok {
					return nil
				}
				return returnBook(out, s, isbn)
			}},
			{Key: "4", Label: "Search for a Book", Run: func() error {
				keyword, ok1 := p.Ask("Enter search keyword: ")
				by, ok2 := p.Ask("Search by title or author? ")
				if !ok1 || !ok2 {
					return nil
				}
				return searchBooks(out, s, keyword, by)
			}},
		},
		ExitKey: "5",
		Exit:    "Exit",
	}
	return menu.Run(p, out)
}

// outcome maps a catalog miss or refused transition to its user message.
// ok is false for errors that are not part of normal operation.
func outcome(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, library.ErrNotFound):
		return "Book not found.", true
	case errors.Is(err, library.ErrNotAvailable):
		return "Book is not available for borrowing.", true
	case errors.Is(err, library.ErrNotBorrowed):
		return "Book is not borrowed.", true
	case errors.Is(err, library.ErrInvalidField):
		return "Invalid search criteria. Please choose 'title' or 'author'.", true
	default:
		return "", false
	}
}

// report prints err's message when it is an expected outcome and converts
// it to console.ErrRejected. Other errors pass through.
func report(out *console.Printer, op string, err error) error {
	if msg, ok := outcome(err); ok {
		out.Failure("%s", msg)
		return fmt.Errorf("%s: %w", op, console.ErrRejected)
	}
	return err
}

func addBook(out *console.Printer, s *session, title, author, isbn string) error {
	_, err := s.lib.AddBook(title, author, isbn)
	var ve *record.ValidationError
	if errors.As(err, &ve) {
		s.logger.Debug("book rejected", "field", ve.Field, "value", ve.Value)
		out.Failure("Error: %s. Book not added.", ve.Reason)
		return fmt.Errorf("add: %w", console.ErrRejected)
	}
	if err != nil {
		return err
	}
	out.Success("Book added successfully.")
	return nil
}

func borrowBook(out *console.Printer, s *session, isbn string) error {
	if _, err := s.lib.BorrowBook(isbn); err != nil {
		return report(out, "borrow", err)
	}
	s.logger.Info("book borrowed", "isbn", isbn)
	out.Success("Book borrowed successfully.")
	return nil
}

func returnBook(out *console.Printer, s *session, isbn string) error {
	if _, err := s.lib.ReturnBook(isbn); err != nil {
		return report(out, "return", err)
	}
	s.logger.Info("book returned", "isbn", isbn)
	out.Success("Book returned successfully.")
	return nil
}

func searchBooks(out *console.Printer, s *session, keyword, by string) error {
	found, err := s.lib.SearchBook(keyword, by)
	if err != nil {
		return report(out, "search", err)
	}
	if len(found) == 0 {
		out.Muted("No books found.")
		return nil
	}
	printBooks(out, found)
	return nil
}

func listBooks(out *console.Printer, s *session) {
	books := s.lib.Books()
	if len(books) == 0 {
		out.Muted("No books found.")
		return
	}
	printBooks(out, books)
}

func printBooks(out *console.Printer, books []library.Book) {
	for _, b := range books {
		out.Line("Title: %s, Author: %s, ISBN: %s, Status: %s", b.Title, b.Author, b.ISBN, b.Status)
	}
}

// isbnColumn is the index of the ISBN in a book table row.
const isbnColumn = 2

// bookTable exposes the catalog to the browser.
func bookTable(s *session) browse.Table {
	return browse.Table{
		Title:   "Library",
		Columns: []string{"Title", "Author", "ISBN", "Status"},
		Rows: func() ([][]string, error) {
			books := s.lib.Books()
			rows := make([][]string, len(books))
			for i, b := range books {
				rows[i] = []string{b.Title, b.Author, b.ISBN, string(b.Status)}
			}
			return rows, nil
		},
	}
}

// bookActions binds borrow and return to the highlighted row.
func bookActions(s *session) []browse.Action {
	transition := func(do func(string) (library.Book, error), done string) func([]string) (string, error) {
		return func(row []string) (string, error) {
			if _, err := do(row[isbnColumn]); err != nil {
				if msg, ok := outcome(err); ok {
					return msg, nil
				}
				return "", err
			}
			return done, nil
		}
	}
	return []browse.Action{
		{
			Binding: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "borrow")),
			Do:      transition(s.lib.BorrowBook, "Book borrowed successfully."),
		},
		{
			Binding: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "return")),
			Do:      transition(s.lib.ReturnBook, "Book returned successfully."),
		},
	}
}
