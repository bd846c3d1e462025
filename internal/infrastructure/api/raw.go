package api

import (
	"bytes"
	"encoding/json"
)

// rawBody captures a response body verbatim; Client.Do skips JSON decoding
// for it so plain-text bodies are accepted.
type rawBody []byte

func decodeRecord[T any](raw rawBody) *T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil
	}
	return &item
}
