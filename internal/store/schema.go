package store

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of a file holding a []T, indented for
// display.
func Schema[T any](title string) ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect([]T{})
	s.Title = title

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: marshaling schema: %w", err)
	}
	return data, nil
}
