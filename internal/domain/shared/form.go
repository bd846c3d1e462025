package shared

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// FormMode is the state an entity form is opened in.
type FormMode int

const (
	ModeCreate FormMode = iota
	ModeEdit
)

func (m FormMode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// ParseRefID parses a selected id from a form. It fails for anything that
// is not a positive int64, including values that overflow.
func ParseRefID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", s)
	}
	return id, nil
}

// ParseID converts an id already checked by ParseRefID (the refid form
// rule); blank input yields 0 (no selection).
func ParseID(s string) int64 {
	id, err := ParseRefID(s)
	if err != nil {
		return 0
	}
	return id
}

// FormatID renders an id for a form field, "" for no selection.
func FormatID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// ParseInt converts a numeric form value; blank input yields 0.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// CheckOneOf returns a field error when value is set and not among options.
func CheckOneOf(field, value string, options []string) []FieldError {
	if value == "" || slices.Contains(options, value) {
		return nil
	}
	return []FieldError{{Field: field, Message: FieldLabel(field) + " must be one of: " + strings.Join(options, ", ")}}
}

// FieldLabel turns a camelCase form field into a sentence-case label:
// "contactInformation" becomes "Contact information", "branchId" becomes
// "Branch".
func FieldLabel(field string) string {
	field = strings.TrimSuffix(field, "Id")
	if field == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
