// Package profile models the student a tutoring session adapts to.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Profile describes a student. Every field is optional; the zero value means
// no profile is available. Attributes without a dedicated field live in
// Extra and are serialized alongside the known ones.
type Profile struct {
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Age               int      `json:"age,omitempty" yaml:"age,omitempty"`
	Grade             int      `json:"grade,omitempty" yaml:"grade,omitempty"`
	LearningStyle     string   `json:"learning_style,omitempty" yaml:"learning_style,omitempty"`
	Interests         []string `json:"interests,omitempty" yaml:"interests,omitempty"`
	Strengths         []string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	GrowthAreas       []string `json:"areas_for_growth,omitempty" yaml:"areas_for_growth,omitempty"`
	PreferredExamples string   `json:"preferred_examples,omitempty" yaml:"preferred_examples,omitempty"`

	Extra map[string]any `json:"-" yaml:"-"`
}

// known aliases Profile without its methods so the default encoder handles
// the typed fields.
type known Profile

// IsZero reports whether p carries no information at all.
func (p Profile) IsZero() bool {
	return p.Name == "" && p.Age == 0 && p.Grade == 0 && p.LearningStyle == "" &&
		len(p.Interests) == 0 && len(p.Strengths) == 0 && len(p.GrowthAreas) == 0 &&
		p.PreferredExamples == "" && len(p.Extra) == 0
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.Interests = slices.Clone(p.Interests)
	p.Strengths = slices.Clone(p.Strengths)
	p.GrowthAreas = slices.Clone(p.GrowthAreas)
	p.Extra = maps.Clone(p.Extra)
	return p
}

// MarshalJSON writes the known fields in declaration order followed by the
// extra attributes sorted by key, all in one flat object. Values that did not
// fit a known field's type are kept under their original key.
func (p Profile) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(known(p))
	if err != nil {
		return nil, err
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(base, &present); err != nil {
		return nil, err
	}

	// A known key left in Extra held a value of another type; it is written
	// as-is unless the typed field already claimed the key.
	extraKeys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		if _, ok := present[k]; !ok {
			extraKeys = append(extraKeys, k)
		}
	}
	if len(extraKeys) == 0 {
		return base, nil
	}
	slices.Sort(extraKeys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	first := len(base) == 2 // "{}"
	for _, k := range extraKeys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Extra[k])
		if err != nil {
			return nil, fmt.Errorf("marshal profile attribute %q: %w", k, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any JSON object. Keys matching a known field with a
// compatible type fill that field; everything else goes to Extra.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = FromMap(m)
	return nil
}

// Map returns p as a flat attribute map.
func (p Profile) Map() map[string]any {
	m := maps.Clone(p.Extra)
	if m == nil {
		m = map[string]any{}
	}
	set := func(k string, v any, empty bool) {
		if !empty {
			m[k] = v
		}
	}
	set("name", p.Name, p.Name == "")
	set("age", p.Age, p.Age == 0)
	set("grade", p.Grade, p.Grade == 0)
	set("learning_style", p.LearningStyle, p.LearningStyle == "")
	set("interests", slices.Clone(p.Interests), len(p.Interests) == 0)
	set("strengths", slices.Clone(p.Strengths), len(p.Strengths) == 0)
	set("areas_for_growth", slices.Clone(p.GrowthAreas), len(p.GrowthAreas) == 0)
	set("preferred_examples", p.PreferredExamples, p.PreferredExamples == "")
	return m
}

// FromMap builds a Profile from a flat attribute map as produced by a JSON
// or YAML decoder.
func FromMap(m map[string]any) Profile {
	var p Profile
	extra := map[string]any{}

	for k, v := range m {
		ok := true
		switch k {
		case "name":
			p.Name, ok = v.(string)
		case "age":
			p.Age, ok = toInt(v)
		case "grade":
			p.Grade, ok = toInt(v)
		case "learning_style":
			p.LearningStyle, ok = v.(string)
		case "interests":
			p.Interests, ok = toStrings(v)
		case "strengths":
			p.Strengths, ok = toStrings(v)
		case "areas_for_growth":
			p.GrowthAreas, ok = toStrings(v)
		case "preferred_examples":
			p.PreferredExamples, ok = v.(string)
		default:
			ok = false
		}
		if !ok {
			extra[k] = v
		}
	}

	if len(extra) > 0 {
		p.Extra = extra
	}
	return p
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func toStrings(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return slices.Clone(s), true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
