package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smileynet/recordkeep/internal/record"
	"github.com/smileynet/recordkeep/internal/store"
)

func openTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library_books.json")
	lib, err := Open(store.NewFileStore[Book](path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return lib, path
}

func mustAddBook(t *testing.T, lib *Library, title, author, isbn string) {
	t.Helper()
	if _, err := lib.AddBook(title, author, isbn); err != nil {
		t.Fatalf("AddBook(%q) error = %v", title, err)
	}
}

func loadBooks(t *testing.T, path string) []Book {
	t.Helper()
	books, err := store.NewFileStore[Book](path).Load()
	if err != nil {
		t.Fatal(err)
	}
	return books
}

// failingStore loads successfully and fails every save.
type failingStore struct {
	books []Book
	saves int
}

func (s *failingStore) Load() ([]Book, error) { return s.books, nil }

func (s *failingStore) Save([]Book) error {
	s.saves++
	return &store.StorageError{Op: "save", Path: "mem", Err: errors.New("disk full")}
}

func TestLibrary_AddBook(t *testing.T) {
	lib, path := openTestLibrary(t)

	b, err := lib.AddBook("Dune", "Herbert", "1234-5678-9012")
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != StatusAvailable {
		t.Errorf("Status = %q, want available", b.Status)
	}

	got := loadBooks(t, path)
	want := Book{Title: "Dune", Author: "Herbert", ISBN: "1234-5678-9012", Status: StatusAvailable}
	if len(got) != 1 || got[0] != want {
		t.Errorf("stored = %+v, want [%+v]", got, want)
	}
}

func TestLibrary_AddBookInvalidISBN(t *testing.T) {
	lib, path := openTestLibrary(t)

	_, err := lib.AddBook("Dune", "Herbert", "1234")
	var ve *record.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("AddBook() error = %v, want *record.ValidationError", err)
	}
	if len(lib.Books()) != 0 {
		t.Errorf("Books() = %+v, want empty", lib.Books())
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("failed add wrote the store file")
	}
}

func TestLibrary_AddBookAllowsDuplicateISBN(t *testing.T) {
	lib, _ := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")
	mustAddBook(t, lib, "Dune (copy)", "Herbert", "1234-5678-9012")

	if n := len(lib.Books()); n != 2 {
		t.Errorf("Books() len = %d, want 2", n)
	}
}

func TestLibrary_BorrowTwice(t *testing.T) {
	// Given Dune added to the catalog
	lib, path := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")

	// When it is borrowed
	b, err := lib.BorrowBook("1234-5678-9012")

	// Then its status becomes borrowed, in memory and on disk
	if err != nil {
		t.Fatalf("BorrowBook() error = %v", err)
	}
	if b.Status != StatusBorrowed {
		t.Errorf("Status = %q, want borrowed", b.Status)
	}
	if got := loadBooks(t, path)[0].Status; got != StatusBorrowed {
		t.Errorf("stored status = %q, want borrowed", got)
	}

	// When it is borrowed again
	_, err = lib.BorrowBook("1234-5678-9012")

	// Then it reports not available and stays borrowed
	if !errors.Is(err, ErrNotAvailable) {
		t.Errorf("second BorrowBook() error = %v, want ErrNotAvailable", err)
	}
	if got := lib.Books()[0].Status; got != StatusBorrowed {
		t.Errorf("status after second borrow = %q, want borrowed", got)
	}
}

func TestLibrary_ReturnAvailableBook(t *testing.T) {
	// Given an available book
	lib, path := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")
	before, _ := os.ReadFile(path)

	// When it is returned
	_, err := lib.ReturnBook("1234-5678-9012")

	// Then it reports not borrowed and nothing changes
	if !errors.Is(err, ErrNotBorrowed) {
		t.Errorf("ReturnBook() error = %v, want ErrNotBorrowed", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("file changed after rejected return")
	}
}

func TestLibrary_BorrowThenReturn(t *testing.T) {
	lib, path := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")

	if _, err := lib.BorrowBook("1234-5678-9012"); err != nil {
		t.Fatal(err)
	}
	b, err := lib.ReturnBook("1234-5678-9012")
	if err != nil {
		t.Fatalf("ReturnBook() error = %v", err)
	}
	if b.Status != StatusAvailable {
		t.Errorf("Status = %q, want available", b.Status)
	}
	if got := loadBooks(t, path)[0].Status; got != StatusAvailable {
		t.Errorf("stored status = %q, want available", got)
	}
}

func TestLibrary_UnknownISBN(t *testing.T) {
	lib, _ := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")

	if _, err := lib.BorrowBook("9999-9999-9999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BorrowBook() error = %v, want ErrNotFound", err)
	}
	if _, err := lib.ReturnBook("9999-9999-9999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReturnBook() error = %v, want ErrNotFound", err)
	}
}

func TestLibrary_BorrowFirstMatchOnly(t *testing.T) {
	lib, _ := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")
	mustAddBook(t, lib, "Dune (copy)", "Herbert", "1234-5678-9012")

	if _, err := lib.BorrowBook("1234-5678-9012"); err != nil {
		t.Fatal(err)
	}
	// The first copy is now out; the second is never considered.
	if _, err := lib.BorrowBook("1234-5678-9012"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("second BorrowBook() error = %v, want ErrNotAvailable", err)
	}
	books := lib.Books()
	if books[0].Status != StatusBorrowed || books[1].Status != StatusAvailable {
		t.Errorf("statuses = %q, %q; want borrowed, available", books[0].Status, books[1].Status)
	}
}

func TestLibrary_SearchBook(t *testing.T) {
	lib, _ := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Frank Herbert", "1234-5678-9012")
	mustAddBook(t, lib, "Children of Dune", "Frank Herbert", "1234-5678-9013")
	mustAddBook(t, lib, "Neuromancer", "William Gibson", "1234-5678-9014")

	tests := []struct {
		name    string
		keyword string
		by      string
		want    []string
	}{
		{name: "title", keyword: "dune", by: "title", want: []string{"Dune", "Children of Dune"}},
		{name: "author", keyword: "GIBSON", by: "author", want: []string{"Neuromancer"}},
		{name: "no match", keyword: "tolkien", by: "author", want: nil},
		{name: "title does not search author", keyword: "herbert", by: "title", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lib.SearchBook(tt.keyword, tt.by)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("SearchBook(%q, %q) = %+v, want titles %v", tt.keyword, tt.by, got, tt.want)
			}
			for i := range got {
				if got[i].Title != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, got[i].Title, tt.want[i])
				}
			}
		})
	}
}

func TestLibrary_SearchBookInvalidField(t *testing.T) {
	lib, _ := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")

	got, err := lib.SearchBook("dune", "invalid_field")
	if !errors.Is(err, ErrInvalidField) {
		t.Errorf("SearchBook() error = %v, want ErrInvalidField", err)
	}
	if len(got) != 0 {
		t.Errorf("SearchBook() = %+v, want empty", got)
	}
}

func TestLibrary_CachesAfterOpen(t *testing.T) {
	// Given a library opened over a file
	lib, path := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")

	// When another writer replaces the file
	other := store.NewFileStore[Book](path)
	if err := other.Save(nil); err != nil {
		t.Fatal(err)
	}

	// Then the open library still sees its own collection
	if n := len(lib.Books()); n != 1 {
		t.Errorf("Books() len = %d, want 1", n)
	}
}

func TestLibrary_BooksIsACopy(t *testing.T) {
	lib, _ := openTestLibrary(t)
	mustAddBook(t, lib, "Dune", "Herbert", "1234-5678-9012")

	books := lib.Books()
	books[0].Status = StatusBorrowed

	if lib.Books()[0].Status != StatusAvailable {
		t.Error("mutating Books() result changed the catalog")
	}
}

func TestOpen_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library_books.json")
	if err := os.WriteFile(path, []byte(`[{"title":"Dune","author":"Herbert","isbn":"bad","status":"available"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(store.NewFileStore[Book](path))
	var se *store.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("Open() error = %v, want *store.StorageError", err)
	}
	var ve *record.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Open() error = %v, want it to wrap *record.ValidationError", err)
	}
	if ve.Field != "isbn" || ve.Value != "bad" {
		t.Errorf("ValidationError = %+v, want field isbn value bad", ve)
	}
}

func TestLibrary_SaveFailureRollsBack(t *testing.T) {
	fs := &failingStore{books: []Book{{Title: "Dune", Author: "Herbert", ISBN: "1234-5678-9012", Status: StatusAvailable}}}
	lib, err := Open(fs)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := lib.BorrowBook("1234-5678-9012"); err == nil {
		t.Fatal("BorrowBook() error = nil, want storage error")
	}
	if got := lib.Books()[0].Status; got != StatusAvailable {
		t.Errorf("status after failed save = %q, want available", got)
	}

	var se *store.StorageError
	if _, err := lib.AddBook("Neuromancer", "Gibson", "1234-5678-9013"); !errors.As(err, &se) {
		t.Errorf("AddBook() error = %v, want *store.StorageError", err)
	}
	if n := len(lib.Books()); n != 1 {
		t.Errorf("Books() len after failed add = %d, want 1", n)
	}
	if fs.saves != 2 {
		t.Errorf("saves = %d, want 2", fs.saves)
	}
}
