package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Supports is an order-preserving mapping from source language to the
// ordered list of target languages a model can translate into. The first
// source and the first target of each source are the model's defaults, so
// insertion order is part of the data, not a presentation detail.
type Supports struct {
	order   []string
	targets map[string][]string
}

// NewSupports builds a Supports mapping from (source, targets) pairs in
// the given order.
func NewSupports(pairs ...SupportsPair) Supports {
	s := Supports{targets: make(map[string][]string, len(pairs))}
	for _, p := range pairs {
		s.add(p.Source, p.Targets)
	}
	return s
}

// SupportsPair is one source language with its ordered targets.
type SupportsPair struct {
	Source  string
	Targets []string
}

func (s *Supports) add(source string, targets []string) {
	if s.targets == nil {
		s.targets = make(map[string][]string)
	}
	if _, ok := s.targets[source]; !ok {
		s.order = append(s.order, source)
	}
	s.targets[source] = targets
}

// Sources returns the source languages in insertion order.
func (s Supports) Sources() []string {
	return s.order
}

// DefaultSource returns the first source language.
func (s Supports) DefaultSource() string {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[0]
}

// Targets returns the ordered target list for source, or nil.
func (s Supports) Targets(source string) []string {
	return s.targets[source]
}

// DefaultTarget returns the first target for source, or "".
func (s Supports) DefaultTarget(source string) string {
	ts := s.targets[source]
	if len(ts) == 0 {
		return ""
	}
	return ts[0]
}

// HasSource reports whether source is a supported source language.
func (s Supports) HasSource(source string) bool {
	_, ok := s.targets[source]
	return ok
}

// HasPair reports whether the model supports source -> target.
func (s Supports) HasPair(source, target string) bool {
	for _, t := range s.targets[source] {
		if t == target {
			return true
		}
	}
	return false
}

// Len returns the number of source languages.
func (s Supports) Len() int {
	return len(s.order)
}

// MarshalJSON emits a JSON object whose keys appear in insertion order.
func (s Supports) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, src := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(src)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.targets[src])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the key order of the input.
func (s *Supports) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("supports: expected object, got %v", tok)
	}

	s.order = nil
	s.targets = make(map[string][]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("supports: non-string key %v", keyTok)
		}
		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return fmt.Errorf("supports: targets of %q: %w", key, err)
		}
		s.add(key, targets)
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
