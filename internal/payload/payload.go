// Package payload implements the Signable Payload data model: the typed
// field variants a wallet UI renders, and their deterministic canonical
// JSON serialization.
//
// Canonical form guarantees:
//   - object keys sorted ascending by Unicode codepoint, recursively
//   - array order preserved as produced
//   - absent optional strings omitted, never emitted as "" or null
//   - HTML-unsafe characters are not escaped; output must be pure ASCII
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Payload is the top-level Signable Payload record.
type Payload struct {
	Version     int64
	Title       string
	Subtitle    string // empty means absent
	PayloadType string // empty means absent
	Fields      []AnnotatedField
}

// New builds a Payload. Subtitle and PayloadType may be empty to signal
// absence in the canonical JSON.
func New(version int64, title, subtitle string, fields []AnnotatedField, payloadType string) *Payload {
	return &Payload{
		Version:     version,
		Title:       title,
		Subtitle:    subtitle,
		PayloadType: payloadType,
		Fields:      fields,
	}
}

// ToJSON renders the canonical, compact, key-sorted JSON form.
func (p *Payload) ToJSON() (string, error) {
	obj := orderedObject{}
	obj.set("Fields", fieldsArray(p.Fields))
	if p.PayloadType != "" {
		obj.set("PayloadType", p.PayloadType)
	}
	if p.Subtitle != "" {
		obj.set("Subtitle", p.Subtitle)
	}
	obj.set("Title", p.Title)
	obj.set("Version", fmt.Sprintf("%d", p.Version))

	raw, err := marshalCompact(obj)
	if err != nil {
		return "", fmt.Errorf("payload: serialization_failed: %w", err)
	}
	return string(raw), nil
}

// ToValidatedJSON renders the canonical JSON and enforces the ASCII-only
// charset invariant before returning it.
func (p *Payload) ToValidatedJSON() (string, error) {
	s, err := p.ToJSON()
	if err != nil {
		return "", err
	}
	if err := ValidateCharset(s); err != nil {
		return "", err
	}
	return s, nil
}

// ValidateCharset fails if s contains any non-ASCII byte or a JSON unicode
// escape sequence, either of which would indicate the encoder fell back to
// \uXXXX escaping (forbidden: downstream signing must not depend on an
// HTML-escaping JSON encoder).
func ValidateCharset(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return fmt.Errorf("payload: charset_validation_failed: non-ASCII byte at offset %d", i)
		}
	}
	if bytes.Contains([]byte(s), []byte(`\u`)) {
		return fmt.Errorf("payload: charset_validation_failed: unexpected unicode escape sequence")
	}
	return nil
}

func fieldsArray(fields []AnnotatedField) jsonArray {
	arr := make(jsonArray, 0, len(fields))
	for _, f := range fields {
		arr = append(arr, f.toOrderedObject())
	}
	return arr
}

// orderedObject is a small ordered map that serializes its keys sorted by
// Unicode codepoint, built up via set() in any order.
type orderedObject struct {
	keys   []string
	values map[string]interface{}
}

func (o *orderedObject) set(key string, value interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

type jsonArray []interface{}

// marshalCompact serializes an orderedObject/jsonArray/primitive tree into
// compact JSON with HTML escaping disabled and keys sorted recursively.
func marshalCompact(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := encodeValue(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case orderedObject:
		return encodeObject(buf, val)
	case *orderedObject:
		return encodeObject(buf, *val)
	case jsonArray:
		return encodeArray(buf, val)
	default:
		return encodeScalar(buf, v)
	}
}

func encodeObject(buf *bytes.Buffer, obj orderedObject) error {
	sorted := append([]string(nil), obj.keys...)
	sort.Strings(sorted)
	buf.WriteByte('{')
	for i, k := range sorted {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := encodeString(k)
		if err != nil {
			return err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		if err := encodeValue(buf, obj.values[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, arr jsonArray) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, elem); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeScalar(buf *bytes.Buffer, v interface{}) error {
	if s, ok := v.(string); ok {
		b, err := encodeString(s)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
	enc := jsonEncoder()
	if err := enc.encoder.Encode(v); err != nil {
		return err
	}
	b := bytes.TrimRight(enc.buf.Bytes(), "\n")
	buf.Write(b)
	return nil
}

func encodeString(s string) ([]byte, error) {
	enc := jsonEncoder()
	if err := enc.encoder.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(enc.buf.Bytes(), "\n"), nil
}

type noHTMLEncoder struct {
	buf     *bytes.Buffer
	encoder *json.Encoder
}

func jsonEncoder() noHTMLEncoder {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return noHTMLEncoder{buf: buf, encoder: enc}
}
