// Package normalize unwraps JSON values that were serialized more than once.
//
// A value stored as "\"\\\"x\\\"\"" is a JSON string whose content is a JSON
// string whose content is x. Value peels those layers until the next decode
// fails or produces something other than a string.
package normalize

import (
	"encoding/json"
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

var (
	errInvalidUTF8   = errors.New("invalid UTF-8")
	errLoneSurrogate = errors.New("unpaired UTF-16 surrogate escape")
)

// decodeJSON is the decoder used by Value; tests replace it to count calls.
var decodeJSON = decode

// Value returns the innermost textual content of raw.
//
// raw must be valid JSON; otherwise the error wraps types.ErrMalformedInput.
// If raw decodes to a non-string value it is returned unchanged. Otherwise
// the decoded string replaces the current text for as long as it decodes to
// another JSON string, and the last string that does not is returned as is.
func Value(raw string) (string, error) {
	s, isString, err := decodeJSON(raw)
	if err != nil {
		return "", types.NewError(types.ErrMalformedInput, "", "", err)
	}
	if !isString {
		return raw, nil
	}

	current := s
	for {
		next, isString, err := decodeJSON(current)
		if err != nil || !isString {
			return current, nil
		}
		current = next
	}
}

// Row applies Value to a source row.
func Row(r types.Row) (types.NormalizedRow, error) {
	v, err := Value(r.RawValue)
	if err != nil {
		return types.NormalizedRow{}, err
	}
	return types.NormalizedRow{ID: r.ID, Value: v}, nil
}

// decode parses text as one JSON value and reports whether it is a string.
// Non-string values are validated but not converted, so numbers outside the
// float64 range still count as valid JSON. Text that encoding/json would
// silently repair to U+FFFD is rejected instead.
func decode(text string) (s string, isString bool, err error) {
	if !utf8.ValidString(text) {
		return "", false, errInvalidUTF8
	}
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return "", false, err
	}
	if err := checkSurrogates(raw); err != nil {
		return "", false, err
	}
	if len(raw) == 0 || raw[0] != '"' {
		return "", false, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, err
	}
	return s, true, nil
}

// checkSurrogates reports an error if a \u escape in the valid JSON text b
// names half of a surrogate pair without the other half.
func checkSurrogates(b []byte) error {
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' {
			continue
		}
		i++
		if b[i] != 'u' {
			continue
		}
		r := hex4(b[i+1 : i+5])
		i += 4
		switch {
		case r >= 0xDC00 && r <= 0xDFFF:
			return errLoneSurrogate
		case r >= 0xD800 && r <= 0xDBFF:
			if i+6 >= len(b) || b[i+1] != '\\' || b[i+2] != 'u' {
				return errLoneSurrogate
			}
			if lo := hex4(b[i+3 : i+7]); lo < 0xDC00 || lo > 0xDFFF {
				return errLoneSurrogate
			}
			i += 6
		}
	}
	return nil
}

func hex4(b []byte) rune {
	n, _ := strconv.ParseUint(string(b), 16, 32)
	return rune(n)
}
