// Package catalog hides per-institution API quirks behind one provider
// contract and normalizes their heterogeneous payloads into the canonical
// entity types.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/noah-isme/course-compass/internal/models"
)

// flexString tolerates upstream fields that arrive as a string, a number,
// a boolean or null. Objects are not strings and decode to empty.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*f = ""
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '{', '[':
		*f = ""
	default:
		*f = flexString(raw)
	}
	return nil
}

func (f flexString) String() string { return string(f) }

// flexInt tolerates integers sent as numbers or numeric strings. Absent or
// malformed values stay nil.
type flexInt struct {
	value *int
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		f.value = nil
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f.value = nil
		return nil
	}
	f.value = &n
	return nil
}

// flexBool tolerates booleans sent as bools, "true"/"false" strings or
// 0/1 numbers.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	raw := strings.ToLower(strings.Trim(strings.TrimSpace(string(data)), `"`))
	*f = raw == "true" || raw == "1"
	return nil
}

// labelItem is the shape catalog list endpoints return at every hierarchy
// level: either a bare string/number, or an object with "value" and "text"
// labels. Which of the two carries the code differs between levels, so
// mapping applies an explicit fallback chain.
type labelItem struct {
	Value flexString `json:"value"`
	Text  flexString `json:"text"`
	raw   string
}

func (l *labelItem) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) > 0 && trimmed[0] == '{' {
		type alias labelItem
		var a alias
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*l = labelItem(a)
		return nil
	}
	var f flexString
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	l.raw = f.String()
	return nil
}

// Code applies the priority chain value ?? text ?? raw.
func (l labelItem) Code() string {
	return pick(l.Value.String(), l.Text.String(), l.raw)
}

// Label applies the priority chain text ?? value ?? raw.
func (l labelItem) Label() string {
	return pick(l.Text.String(), l.Value.String(), l.raw)
}

// pick returns the first non-empty candidate. Missing upstream fields
// degrade to the next candidate instead of failing the record.
func pick(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// normText canonicalizes free-text selectors the way upstream expects
// them in paths: trimmed and lowercased.
func normText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normCode trims catalog codes but preserves their formatting (the
// upstream accepts e.g. "276" and "366w" as typed).
func normCode(s string) string {
	return strings.TrimSpace(s)
}

// parseModality keyword-searches a free-text delivery-method field.
func parseModality(delivery string) models.Modality {
	lowered := strings.ToLower(delivery)
	switch {
	case strings.Contains(lowered, "online"):
		return models.ModalityOnline
	case strings.Contains(lowered, "blended"), strings.Contains(lowered, "hybrid"):
		return models.ModalityHybrid
	default:
		return models.ModalityInPerson
	}
}

// normalizeInstructor accepts the three instructor shapes seen upstream:
// a plain string, an object with a name, or a list of either.
func normalizeInstructor(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Name flexString `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name.String()
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		names := make([]string, 0, len(list))
		for _, item := range list {
			if name := normalizeInstructor(item); name != "" {
				names = append(names, name)
			}
		}
		return strings.Join(names, ", ")
	}

	return ""
}
