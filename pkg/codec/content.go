package codec

import (
	"encoding/base64"
	"fmt"

	json "github.com/goccy/go-json"
)

// EncodingError reports binary content that is not valid base64.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid base64 content: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Content is raw binary content carried as a standard-base64 JSON string.
// A nil Content means the field is absent; an empty non-nil Content is an
// empty buffer. Fields using Content should carry omitempty so absent stays
// absent on the wire.
type Content []byte

func (c Content) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(c))
}

func (c *Content) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &EncodingError{Err: err}
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return &EncodingError{Err: err}
	}
	*c = decoded
	return nil
}
