// Package canonjson produces a byte-stable JSON encoding for signing.
//
// The output follows the JSON Canonicalization Scheme (RFC 8785): object keys
// sorted by UTF-16 code units at every depth, no insignificant whitespace,
// strings escaped only where JSON requires it and numbers in ECMAScript form.
// Any RFC 8785 implementation reproduces the same bytes.
package canonjson

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// Marshal returns the canonical encoding of v.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(raw)
}
