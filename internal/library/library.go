package library

import (
	"errors"
	"fmt"
	"slices"

	"github.com/smileynet/recordkeep/internal/record"
)

// ErrNotFound is returned when no book carries the requested ISBN.
var ErrNotFound = errors.New("library: book not found")

// Store loads and saves the full book collection.
type Store interface {
	Load() ([]Book, error)
	Save([]Book) error
}

// Library holds the catalog in memory for the life of the process. The
// collection is loaded once by Open and written back after each mutation.
type Library struct {
	store Store
	books []Book
}

// Open loads the catalog from store.
func Open(store Store) (*Library, error) {
	books, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("library: open: %w", err)
	}
	return &Library{store: store, books: books}, nil
}

// Books returns a copy of the catalog in insertion order.
func (l *Library) Books() []Book {
	return slices.Clone(l.books)
}

// AddBook validates the ISBN, appends an available book and persists.
// ISBN uniqueness is not enforced.
func (l *Library) AddBook(title, author, isbn string) (Book, error) {
	b, err := NewBook(title, author, isbn)
	if err != nil {
		return Book{}, err
	}
	l.books = append(l.books, b)
	if err := l.save(); err != nil {
		l.books = l.books[:len(l.books)-1]
		return Book{}, fmt.Errorf("library: add: %w", err)
	}
	return b, nil
}

// SearchBook returns the books whose title or author (per by) contains
// keyword, ignoring case. An unknown by yields ErrInvalidField and no
// results.
func (l *Library) SearchBook(keyword, by string) ([]Book, error) {
	field, err := ParseField(by)
	if err != nil {
		return nil, err
	}
	return l.Search(keyword, field), nil
}

// Search is SearchBook with an already parsed field.
func (l *Library) Search(keyword string, field Field) []Book {
	var found []Book
	for _, b := range l.books {
		if record.ContainsFold(field.value(b), keyword) {
			found = append(found, b)
		}
	}
	return found
}

// BorrowBook marks the first book with isbn as borrowed.
func (l *Library) BorrowBook(isbn string) (Book, error) {
	return l.transition(isbn, Status.Borrow)
}

// ReturnBook marks the first book with isbn as available again.
func (l *Library) ReturnBook(isbn string) (Book, error) {
	return l.transition(isbn, Status.Return)
}

func (l *Library) transition(isbn string, next func(Status) (Status, error)) (Book, error) {
	i := slices.IndexFunc(l.books, func(b Book) bool { return b.ISBN == isbn })
	if i < 0 {
		return Book{}, ErrNotFound
	}

	status, err := next(l.books[i].Status)
	if err != nil {
		return l.books[i], err
	}

	prev := l.books[i].Status
	l.books[i].Status = status
	if err := l.save(); err != nil {
		l.books[i].Status = prev
		return Book{}, fmt.Errorf("library: %s: %w", isbn, err)
	}
	return l.books[i], nil
}

func (l *Library) save() error {
	return l.store.Save(l.books)
}
