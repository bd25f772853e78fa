package library

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/smileynet/recordkeep/internal/record"
)

func TestNewBook_ISBN(t *testing.T) {
	tests := []struct {
		isbn    string
		wantErr bool
	}{
		{isbn: "1234-5678-9012"},
		{isbn: "0000-0000-0000"},
		{isbn: "", wantErr: true},
		{isbn: "1234-5678-901", wantErr: true},
		{isbn: "12345-678-9012", wantErr: true},
		{isbn: "123456789012", wantErr: true},
		{isbn: "1234-5678-9012-", wantErr: true},
		{isbn: "abcd-efgh-ijkl", wantErr: true},
		{isbn: " 1234-5678-9012", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.isbn, func(t *testing.T) {
			b, err := NewBook("Dune", "Herbert", tt.isbn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBook(isbn=%q) error = %v, wantErr %v", tt.isbn, err, tt.wantErr)
			}
			if err != nil {
				var ve *record.ValidationError
				if !errors.As(err, &ve) || ve.Field != "isbn" {
					t.Errorf("NewBook(isbn=%q) error = %v, want isbn ValidationError", tt.isbn, err)
				}
				return
			}
			if b.Status != StatusAvailable {
				t.Errorf("Status = %q, want %q", b.Status, StatusAvailable)
			}
		})
	}
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		op      func(Status) (Status, error)
		want    Status
		wantErr error
	}{
		{name: "borrow available", from: StatusAvailable, op: Status.Borrow, want: StatusBorrowed},
		{name: "borrow borrowed", from: StatusBorrowed, op: Status.Borrow, want: StatusBorrowed, wantErr: ErrNotAvailable},
		{name: "return borrowed", from: StatusBorrowed, op: Status.Return, want: StatusAvailable},
		{name: "return available", from: StatusAvailable, op: Status.Return, want: StatusAvailable, wantErr: ErrNotBorrowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.from)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBook_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantStatus Status
		wantErr    bool
	}{
		{name: "borrowed", data: `{"title":"Dune","author":"Herbert","isbn":"1234-5678-9012","status":"borrowed"}`, wantStatus: StatusBorrowed},
		{name: "missing status", data: `{"title":"Dune","author":"Herbert","isbn":"1234-5678-9012"}`, wantStatus: StatusAvailable},
		{name: "bad isbn", data: `{"title":"Dune","author":"Herbert","isbn":"12","status":"available"}`, wantErr: true},
		{name: "unknown status", data: `{"title":"Dune","author":"Herbert","isbn":"1234-5678-9012","status":"lost"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Book
			err := json.Unmarshal([]byte(tt.data), &b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && b.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", b.Status, tt.wantStatus)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{in: "title", want: FieldTitle},
		{in: "author", want: FieldAuthor},
		{in: "Title", wantErr: true},
		{in: "isbn", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidField) {
				t.Errorf("ParseField(%q) error = %v, want ErrInvalidField", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseField(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}
