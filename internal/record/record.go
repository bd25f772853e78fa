// Package record holds the validation and matching rules shared by the
// contact book and the library catalog.
package record

import (
	"regexp"
	"strings"
)

// ValidationError reports a record field that does not match its format.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Pattern is an anchored format rule for a single field.
type Pattern struct {
	re     *regexp.Regexp
	reason string
}

// NewPattern compiles expr, anchoring it at both ends if needed.
// It panics if expr is not a valid regular expression.
func NewPattern(expr, reason string) Pattern {
	if !strings.HasPrefix(expr, "^") {
		expr = "^" + expr
	}
	if !strings.HasSuffix(expr, "$") {
		expr += "$"
	}
	return Pattern{re: regexp.MustCompile(expr), reason: reason}
}

// Check returns a *ValidationError naming field when value does not fully
// match the pattern.
func (p Pattern) Check(field, value string) error {
	if !p.re.MatchString(value) {
		return &ValidationError{Field: field, Value: value, Reason: p.reason}
	}
	return nil
}

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
