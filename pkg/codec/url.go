// Package codec provides the field-level codecs shared by the attestation
// models: absolute-URL string fields and base64-encoded binary content.
package codec

import (
	"fmt"
	"net/url"

	json "github.com/goccy/go-json"
)

// FormatError reports a string field that is not a well-formed absolute URL.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid URL %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid URL %q: not an absolute URL", e.Value)
}

func (e *FormatError) Unwrap() error { return e.Err }

// URL is an absolute URL carried as a JSON string. The zero value is
// distinguishable from any parsed URL via IsZero.
type URL struct {
	u *url.URL
}

// ParseURL parses s as an absolute URL. Relative references and malformed
// input return a *FormatError.
func ParseURL(s string) (URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return URL{}, &FormatError{Value: s, Err: err}
	}
	if !u.IsAbs() {
		return URL{}, &FormatError{Value: s}
	}
	return URL{u: u}, nil
}

// MustParseURL is ParseURL for fixtures and tests; it panics on error.
func MustParseURL(s string) URL {
	u, err := ParseURL(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u URL) String() string {
	if u.u == nil {
		return ""
	}
	return u.u.String()
}

func (u URL) IsZero() bool { return u.u == nil }

// Equal reports whether two URLs have the same string form. go-cmp picks
// this up when comparing decoded documents.
func (u URL) Equal(other URL) bool { return u.String() == other.String() }

func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &FormatError{Value: string(data), Err: err}
	}
	parsed, err := ParseURL(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
