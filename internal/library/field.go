package library

import (
	"errors"
	"fmt"
)

// ErrInvalidField is returned for a search axis other than title or author.
var ErrInvalidField = errors.New("library: invalid search criteria, choose 'title' or 'author'")

// Field is a searchable book attribute.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
)

// ParseField maps "title" or "author" to a Field. Matching is exact.
func ParseField(s string) (Field, error) {
	switch s {
	case "title":
		return FieldTitle, nil
	case "author":
		return FieldAuthor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
}

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldAuthor:
		return "author"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// value returns the attribute of b that f names.
func (f Field) value(b Book) string {
	if f == FieldAuthor {
		return b.Author
	}
	return b.Title
}
