package contact

import (
	"fmt"

	"github.com/smileynet/recordkeep/internal/record"
)

// Store loads and saves the full contact collection.
type Store interface {
	Load() ([]Contact, error)
	Save([]Contact) error
}

// Book is the contact book. It holds no records itself; every call reloads
// the collection from the store.
type Book struct {
	store Store
}

// NewBook returns a Book over store.
func NewBook(store Store) *Book {
	return &Book{store: store}
}

// Add validates the fields, appends the contact and persists the collection.
// On a validation error the store is not touched.
func (b *Book) Add(name, email, phone string) (Contact, error) {
	c, err := New(name, email, phone)
	if err != nil {
		return Contact{}, err
	}

	contacts, err := b.store.Load()
	if err != nil {
		return Contact{}, fmt.Errorf("contact: add: %w", err)
	}
	contacts = append(contacts, c)
	if err := b.store.Save(contacts); err != nil {
		return Contact{}, fmt.Errorf("contact: add: %w", err)
	}
	return c, nil
}

// List returns every contact in insertion order.
func (b *Book) List() ([]Contact, error) {
	contacts, err := b.store.Load()
	if err != nil {
		return nil, fmt.Errorf("contact: list: %w", err)
	}
	return contacts, nil
}

// Search returns the contacts whose name contains query, ignoring case.
func (b *Book) Search(query string) ([]Contact, error) {
	contacts, err := b.store.Load()
	if err != nil {
		return nil, fmt.Errorf("contact: search: %w", err)
	}
	var found []Contact
	for _, c := range contacts {
		if record.ContainsFold(c.Name, query) {
			found = append(found, c)
		}
	}
	return found, nil
}

// Delete removes every contact whose name contains query, ignoring case,
// and returns how many were removed. The store is only written when at
// least one contact matched.
func (b *Book) Delete(query string) (int, error) {
	contacts, err := b.store.Load()
	if err != nil {
		return 0, fmt.Errorf("contact: delete: %w", err)
	}
	remaining := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if !record.ContainsFold(c.Name, query) {
			remaining = append(remaining, c)
		}
	}

	removed := len(contacts) - len(remaining)
	if removed == 0 {
		return 0, nil
	}
	if err := b.store.Save(remaining); err != nil {
		return 0, fmt.Errorf("contact: delete: %w", err)
	}
	return removed, nil
}
