// Package library implements the library catalog: validated books whose
// status moves between available and borrowed.
package library

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smileynet/recordkeep/internal/record"
)

var isbnPattern = record.NewPattern(`^\d{4}-\d{4}-\d{4}$`, "invalid ISBN format, use XXXX-XXXX-XXXX")

// Status is the lending state of a book.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBorrowed  Status = "borrowed"
)

var (
	// ErrNotAvailable is returned when borrowing a book that is already out.
	ErrNotAvailable = errors.New("library: book is not available for borrowing")
	// ErrNotBorrowed is returned when returning a book that is not out.
	ErrNotBorrowed = errors.New("library: book is not borrowed")
)

// Borrow returns the status after a borrow.
func (s Status) Borrow() (Status, error) {
	if s != StatusAvailable {
		return s, ErrNotAvailable
	}
	return StatusBorrowed, nil
}

// Return returns the status after a return.
func (s Status) Return() (Status, error) {
	if s != StatusBorrowed {
		return s, ErrNotBorrowed
	}
	return StatusAvailable, nil
}

func (s Status) valid() bool {
	return s == StatusAvailable || s == StatusBorrowed
}

// Book is a catalog entry. Only Status changes after construction.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn" jsonschema:"pattern=^\\d{4}-\\d{4}-\\d{4}$"`
	Status Status `json:"status" jsonschema:"enum=available,enum=borrowed"`
}

// NewBook validates isbn and returns an available book.
func NewBook(title, author, isbn string) (Book, error) {
	if err := isbnPattern.Check("isbn", isbn); err != nil {
		return Book{}, err
	}
	return Book{Title: title, Author: author, ISBN: isbn, Status: StatusAvailable}, nil
}

// UnmarshalJSON decodes a book, validating the ISBN and status. A missing
// status defaults to available.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	v, err := NewBook(p.Title, p.Author, p.ISBN)
	if err != nil {
		return err
	}
	if p.Status != "" {
		if !p.Status.valid() {
			return fmt.Errorf("library: unknown status %q", p.Status)
		}
		v.Status = p.Status
	}
	*b = v
	return nil
}
