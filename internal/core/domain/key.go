package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// keySeparator joins the three key components. Game virtual paths and the
// supported path-expression subset never contain it.
const keySeparator = "|"

// LocationKey is the content-addressed identity of a field: the virtual file
// that holds it, the path expression selecting the owning element, and the
// attribute name. Its string form is the durable key persisted in the patch
// file; persisted keys are matched by string equality, never re-parsed.
type LocationKey struct {
	File  string
	Path  string
	Field string
}

// String returns the durable textual form of the key.
func (k LocationKey) String() string {
	return k.File + keySeparator + k.Path + keySeparator + k.Field
}

// IsZero reports whether the key is empty.
func (k LocationKey) IsZero() bool {
	return k.File == "" && k.Path == "" && k.Field == ""
}

// MarshalText implements encoding.TextMarshaler.
func (k LocationKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *LocationKey) UnmarshalText(text []byte) error {
	parsed, err := ParseLocationKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseLocationKey splits a durable key back into its components. It exists
// for diagnostics and working-tree write-back only; patch matching never
// goes through it.
func ParseLocationKey(s string) (LocationKey, error) {
	parts := strings.SplitN(s, keySeparator, 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return LocationKey{}, zerr.With(zerr.Wrap(ErrMalformedKey, ""), "key", s)
	}
	return LocationKey{File: parts[0], Path: parts[1], Field: parts[2]}, nil
}
