package codec

import (
	"encoding/json"
)

// NullBytes is one position of a batch of raw inputs or outputs. An invalid (absent) position is
// passed through a batch operation unchanged.
type NullBytes struct {
	Bytes []byte
	Valid bool
}

// NullString is one position of a batch of encoded inputs or outputs.
type NullString struct {
	String string
	Valid  bool
}

// Bytes wraps b as a present position
func Bytes(b []byte) NullBytes {
	return NullBytes{Bytes: b, Valid: true}
}

// String wraps s as a present position
func String(s string) NullString {
	return NullString{String: s, Valid: true}
}

// MarshalJSON writes absent positions as null
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullString{}
		return nil
	}
	if err := json.Unmarshal(data, &n.String); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON writes the bytes as standard base64, the way encoding/json writes a []byte. Absent
// positions are written as null.
func (n NullBytes) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	if n.Bytes == nil {
		return []byte(`""`), nil
	}
	return json.Marshal(n.Bytes)
}

func (n *NullBytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullBytes{}
		return nil
	}
	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	if b == nil {
		b = []byte{}
	}
	*n = NullBytes{Bytes: b, Valid: true}
	return nil
}
