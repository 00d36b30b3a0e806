package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// scanObject returns the end of the JSON object opening at s[start]. Braces
// inside string literals are ignored. ok is false when the object never closes.
func scanObject(s string, start int) (end int, ok bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// nextStart finds the next '{' at or after from. After an unclosed span only a
// brace that cannot be a nested value qualifies, so a truncated object never
// yields one of its own members.
func nextStart(s string, from int, afterUnclosed bool) int {
	for from < len(s) {
		i := strings.IndexByte(s[from:], '{')
		if i < 0 {
			return -1
		}
		pos := from + i
		if !afterUnclosed || !continuesValue(s[:pos]) {
			return pos
		}
		from = pos + 1
	}
	return -1
}

func continuesValue(prefix string) bool {
	prefix = strings.TrimRightFunc(prefix, unicode.IsSpace)
	if prefix == "" {
		return false
	}
	switch prefix[len(prefix)-1] {
	case ':', ',', '[', '{':
		return true
	}
	return false
}

func decodeObject(span string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(span))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return obj, nil
}

// Extract returns the first JSON object embedded in raw model output (prose,
// code fences) that decodes, without any schema checks. Stray braces in the
// prose before it are skipped. When nothing decodes, the error describes the
// first candidate: ErrMalformedResponse if it never closed, ErrInvalidJSON if
// it did not parse.
func Extract(raw string) (map[string]any, error) {
	var firstErr error
	for pos := nextStart(raw, 0, false); pos >= 0; {
		end, ok := scanObject(raw, pos)
		if !ok {
			if firstErr == nil {
				firstErr = ErrMalformedResponse
			}
			pos = nextStart(raw, pos+1, true)
			continue
		}

		obj, err := decodeObject(raw[pos:end])
		if err == nil {
			return obj, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		pos = nextStart(raw, end, false)
	}
	if firstErr == nil {
		return nil, ErrMalformedResponse
	}
	return nil, firstErr
}

// ParseItinerary extracts the JSON object from raw model output and checks it
// against the itinerary schema before decoding it.
func ParseItinerary(raw string) (*Itinerary, error) {
	obj, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	if err := checkSchema(obj); err != nil {
		return nil, err
	}

	// Re-encoding a schema-checked map cannot fail.
	data, _ := json.Marshal(obj)
	var it Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return &it, nil
}
