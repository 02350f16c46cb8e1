// Package types provides type definitions for structured data used throughout the resume-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// Resume represents a structured resume document as stored by the resume builder
type Resume struct {
	ID         uuid.UUID   `json:"id,omitempty"`
	UserID     uuid.UUID   `json:"userId,omitempty"`
	Title      string      `json:"title,omitempty"`
	TemplateID string      `json:"templateId,omitempty"`
	Sections   SectionData `json:"sectionData"`
}

// SectionData holds the six named resume collections. A missing or null
// collection decodes to an empty one.
type SectionData struct {
	Education      []SectionEntry `json:"education"`
	Experience     []SectionEntry `json:"experience"`
	Skills         []SectionEntry `json:"skills"`
	Projects       []SectionEntry `json:"projects"`
	Certifications []SectionEntry `json:"certifications"`
	Achievements   []SectionEntry `json:"achievements"`
}

// Normalized returns a copy with every nil collection replaced by an empty one,
// so serialized output always contains [] rather than null.
func (s SectionData) Normalized() SectionData {
	return SectionData{
		Education:      nonNil(s.Education),
		Experience:     nonNil(s.Experience),
		Skills:         nonNil(s.Skills),
		Projects:       nonNil(s.Projects),
		Certifications: nonNil(s.Certifications),
		Achievements:   nonNil(s.Achievements),
	}
}

func nonNil(entries []SectionEntry) []SectionEntry {
	if entries == nil {
		return []SectionEntry{}
	}
	return entries
}

// MarshalJSON encodes the section data with empty collections as [].
// HTML characters are left unescaped.
func (s SectionData) MarshalJSON() ([]byte, error) {
	type plain SectionData
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(plain(s.Normalized())); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes section data; null or missing collections become empty.
func (s *SectionData) UnmarshalJSON(data []byte) error {
	type plain SectionData
	var p plain
	if !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
	}
	*s = SectionData(p).Normalized()
	return nil
}

// SectionEntry is one item in a resume section. Entries are either plain strings
// ("Go", "BSc Computer Science") or structured objects such as an experience
// record with a description. The raw JSON is kept as-is.
type SectionEntry struct {
	raw json.RawMessage
}

// StringEntry builds a plain-string entry.
func StringEntry(s string) SectionEntry {
	b, _ := json.Marshal(s)
	return SectionEntry{raw: b}
}

// ObjectEntry builds a structured entry from string fields.
func ObjectEntry(fields map[string]string) SectionEntry {
	b, _ := json.Marshal(fields)
	return SectionEntry{raw: b}
}

// MarshalJSON returns the stored raw JSON value.
func (e SectionEntry) MarshalJSON() ([]byte, error) {
	if len(e.raw) == 0 {
		return []byte("null"), nil
	}
	return e.raw, nil
}

// UnmarshalJSON stores a copy of any JSON value.
func (e *SectionEntry) UnmarshalJSON(data []byte) error {
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Text returns the entry's value when it is a plain string.
func (e SectionEntry) Text() (string, bool) {
	var s string
	if err := json.Unmarshal(e.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Field returns a string field of a structured entry.
func (e SectionEntry) Field(name string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(e.raw, &obj); err != nil || obj == nil {
		return "", false
	}
	value, ok := obj[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", false
	}
	return s, true
}
