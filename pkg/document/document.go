// Package document holds the ordered, immutable-once-built documents that
// the structured renderers produce, and their JSON and YAML encodings.
package document

import (
	"bytes"
	"encoding/json"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its members in insertion order. Values
// are strings, booleans, numbers, *Object or []any.
type Object struct {
	members []Member
}

func NewObject() *Object {
	return &Object{}
}

// Set stores value under key, replacing an existing member in place.
func (o *Object) Set(key string, value any) *Object {
	for i := range o.members {
		if o.members[i].Key == key {
			o.members[i].Value = value
			return o
		}
	}
	o.members = append(o.members, Member{Key: key, Value: value})
	return o
}

func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	for _, m := range o.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns a copy of the members in order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return append([]Member(nil), o.members...)
}

func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, m.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, m.Value); err != nil {
			return nil, errors.Errorf("encoding %q: %w", m.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue appends the compact JSON encoding of v without HTML escaping,
// so operators like "<" stay readable.
func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode terminates with a newline.
	return nil
}

func (o *Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if o == nil {
		return node, nil
	}
	for _, m := range o.members {
		var value yaml.Node
		if err := value.Encode(m.Value); err != nil {
			return nil, errors.Errorf("encoding %q: %w", m.Key, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
		node.Content = append(node.Content, key, &value)
	}
	return node, nil
}
