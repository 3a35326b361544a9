package domain

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/zerr"
)

// StableJSON renders v as indented JSON with sorted object keys and a trailing
// newline, so the same value always produces the same bytes.
func StableJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalizeJSON(v)); err != nil {
		return nil, zerr.Wrap(err, ErrStableJSONFailed.Error())
	}
	return buf.Bytes(), nil
}

// normalizeJSON converts map[any]any values, which encoding/json rejects, into
// map[string]any. Map keys are sorted by the encoder.
func normalizeJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeJSON(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[toKey(k)] = normalizeJSON(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeJSON(val)
		}
		return out
	default:
		return v
	}
}

func toKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	b, err := json.Marshal(k)
	if err != nil {
		return ""
	}
	return string(bytes.Trim(b, `"`))
}
