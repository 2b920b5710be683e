package analysis

import (
	"bytes"
	"encoding/json"
	"strings"
)

// scanJSON returns the substring from the first open bracket to the last close
// bracket. Models often wrap JSON in prose or markdown fences.
func scanJSON(raw string, open, close byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// looseObject is a decoded JSON object whose fields are converted on read.
// Any valid object is accepted; field types are never checked against a schema.
type looseObject map[string]json.RawMessage

// scanObject finds the JSON object in raw. It fails only when no valid object is present.
func scanObject(raw string) (looseObject, bool) {
	s, ok := scanJSON(raw, '{', '}')
	if !ok {
		return nil, false
	}
	var obj looseObject
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		obj = looseObject{}
	}
	return obj, true
}

// scanArray finds the JSON array in raw and returns its elements undecoded
func scanArray(raw string) ([]json.RawMessage, bool) {
	s, ok := scanJSON(raw, '[', ']')
	if !ok {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil {
		return nil, false
	}
	return elems, true
}

func (o looseObject) str(key string) string {
	return looseString(o[key])
}

func (o looseObject) strs(key string) []string {
	return looseStrings(o[key])
}

// elementObject decodes one array element. A bare string becomes an object
// holding it under key; null and other scalars are skipped.
func elementObject(elem json.RawMessage, key string) (looseObject, bool) {
	switch firstByte(elem) {
	case '{':
		var obj looseObject
		if err := json.Unmarshal(elem, &obj); err != nil {
			return nil, false
		}
		return obj, true
	case '"':
		if s := looseString(elem); s != "" {
			return looseObject{key: elem}, true
		}
	}
	return nil, false
}

// looseString reads any JSON value as text. Lists are joined with ", ",
// null is empty, numbers and booleans keep their literal form and objects
// keep their JSON text.
func looseString(v json.RawMessage) string {
	switch firstByte(v) {
	case 0, 'n':
		return ""
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	case '[':
		return strings.Join(looseStrings(v), ", ")
	}
	return string(bytes.TrimSpace(v))
}

// looseStrings reads any JSON value as a list of text. A single value becomes
// a one-element list, null and empty strings are dropped.
func looseStrings(v json.RawMessage) []string {
	out := []string{}
	switch firstByte(v) {
	case 0, 'n':
		return out
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(v, &elems); err != nil {
			return out
		}
		for _, e := range elems {
			if s := looseString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := looseString(v); s != "" {
		out = append(out, s)
	}
	return out
}

func firstByte(v json.RawMessage) byte {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return 0
	}
	return v[0]
}
