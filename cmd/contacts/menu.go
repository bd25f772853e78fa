package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/smileynet/recordkeep/internal/browse"
	"github.com/smileynet/recordkeep/internal/console"
	"github.com/smileynet/recordkeep/internal/contact"
	"github.com/smileynet/recordkeep/internal/record"
)

// runMenu drives the numbered contact menu until exit or end of input.
func runMenu(in io.Reader, w io.Writer, s *session) error {
	p := console.NewPrompter(in, w)
	out := console.NewPrinter(w)

	menu := console.Menu{
		Options: []console.Option{
			{Key: "1", Label: "Add Contact", Run: func() error {
				name, ok1 := p.Ask("Enter name: ")
				email, ok2 := p.Ask("Enter email: ")
				phone, ok3 := p.Ask("Enter phone number (format: 017-12345678): ")
				if !ok1 || !ok2 || !ok3 {
					return nil
				}
				return addContact(out, s, name, email, phone)
			}},
			{Key: "2", Label: "List Contacts", Run: func() error {
				return listContacts(out, s)
			}},
			{Key: "3", Label: "Search Contact", Run: func() error {
				query, ok := p.Ask("Enter the name to search: ")
				if !ok {
					return nil
				}
				return searchContacts(out, s, query)
			}},
			{Key: "4", Label: "Delete Contact", Run: func() error {
				query, ok := p.Ask("Enter the name to delete: ")
				if !ok {
					return nil
				}
				return deleteContacts(out, s, query)
			}},
		},
		ExitKey: "5",
		Exit:    "Exit",
	}
	return menu.Run(p, out)
}

// addContact adds a contact and reports the outcome. A validation failure
// is printed and returned as console.ErrRejected.
func addContact(out *console.Printer, s *session, name, email, phone string) error {
	_, err := s.book.Add(name, email, phone)
	var ve *record.ValidationError
	if errors.As(err, &ve) {
		s.logger.Debug("contact rejected", "field", ve.Field, "value", ve.Value)
		out.Failure("Error: %s. Contact not added.", ve.Reason)
		return fmt.Errorf("add: %w", console.ErrRejected)
	}
	if err != nil {
		return err
	}
	out.Success("Contact added successfully.")
	return nil
}

// listContacts prints every contact in insertion order.
func listContacts(out *console.Printer, s *session) error {
	contacts, err := s.book.List()
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		out.Muted("No contacts found.")
		return nil
	}
	printContacts(out, contacts)
	return nil
}

// searchContacts prints the contacts whose name contains query.
func searchContacts(out *console.Printer, s *session, query string) error {
	found, err := s.book.Search(query)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		out.Failure("Contact not found.")
		return fmt.Errorf("search: %w", console.ErrRejected)
	}
	printContacts(out, found)
	return nil
}

// deleteContacts removes every contact whose name contains query.
func deleteContacts(out *console.Printer, s *session, query string) error {
	n, err := s.book.Delete(query)
	if err != nil {
		return err
	}
	if n == 0 {
		out.Failure("Contact not found.")
		return fmt.Errorf("delete: %w", console.ErrRejected)
	}
	s.logger.Info("contacts deleted", "query", query, "count", n)
	out.Success("Contact deleted successfully.")
	return nil
}

func printContacts(out *console.Printer, contacts []contact.Contact) {
	for _, c := range contacts {
		out.Line("Name: %s, Email: %s, Phone: %s", c.Name, c.Email, c.PhoneNumber)
	}
}

// contactTable exposes the contact book to the browser.
func contactTable(s *session) browse.Table {
	return browse.Table{
		Title:   "Contacts",
		Columns: []string{"Name", "Email", "Phone"},
		Rows: func() ([][]string, error) {
			contacts, err := s.book.List()
			if err != nil {
				return nil, err
			}
			rows := make([][]string, len(contacts))
			for i, c := range contacts {
				rows[i] = []string{c.Name, c.Email, c.PhoneNumber}
			}
			return rows, nil
		},
	}
}
