package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Int is an integer that may be invalid. An invalid Int marshals to JSON
// null, which is how an unparseable numeric input reaches the service.
type Int struct {
	Value int64
	Valid bool
}

// IntOf wraps a valid integer.
func IntOf(v int64) Int {
	return Int{Value: v, Valid: true}
}

// InvalidInt returns the sentinel used for inputs that failed to parse.
func InvalidInt() Int {
	return Int{}
}

// Positive reports whether the value is valid and greater than zero.
func (i Int) Positive() bool {
	return i.Valid && i.Value > 0
}

func (i Int) String() string {
	if !i.Valid {
		return "invalid"
	}
	return strconv.FormatInt(i.Value, 10)
}

// MarshalJSON implements json.Marshaler.
func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, i.Value, 10), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = InvalidInt()
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("model: decode int: %w", err)
	}
	*i = IntOf(v)
	return nil
}

// Whole is a lenient integer used for response fields. The service emits
// ranks and years from a dataframe, so integral floats such as 6000.0 and
// nulls are accepted; null decodes to zero.
type Whole int64

// UnmarshalJSON implements json.Unmarshaler.
func (w *Whole) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*w = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return fmt.Errorf("model: decode whole number: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("model: decode whole number: %s is not finite", trimmed)
	}
	*w = Whole(math.Round(f))
	return nil
}
