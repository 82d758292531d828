package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BlockType tags the kind of content a block carries.
type BlockType string

const (
	BlockTypeText     BlockType = "text"
	BlockTypeTodo     BlockType = "todo"
	BlockTypeTable    BlockType = "table"
	BlockTypeCalendar BlockType = "calendar"
)

// BlockTypes lists every accepted block type in display order.
var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeTodo,
	BlockTypeTable,
	BlockTypeCalendar,
}

func (t BlockType) Valid() bool {
	switch t {
	case BlockTypeText, BlockTypeTodo, BlockTypeTable, BlockTypeCalendar:
		return true
	}
	return false
}

// Payload is the schema-free JSON object stored in a block.
// A nil Payload encodes as {} both on the wire and in the database.
// Numbers decode as json.Number so integers keep every digit.
type Payload map[string]any

func decodePayload(raw []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after payload object")
	}
	return Payload(m), nil
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(p))
}

// UnmarshalJSON leaves a JSON null as a nil Payload
func (p *Payload) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*p = nil
		return nil
	}

	decoded, err := decodePayload(b)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// Value implements driver.Valuer
func (p Payload) Value() (driver.Value, error) {
	b, err := p.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *Payload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = Payload{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported payload column type %T", src)
	}

	decoded, err := decodePayload(raw)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if decoded == nil {
		decoded = Payload{}
	}
	*p = decoded
	return nil
}
