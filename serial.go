package money

import (
	"database/sql/driver"
	"fmt"
)

// The stable external representations are the fixed 2-decimal string
// (human) and the integer cents (machine); every codec below is built on
// one of the two.

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// It accepts a JSON number or a quoted decimal string; null leaves the
// amount unchanged.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*a, err = ParseAmount(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a JSON number with exactly 2 fractional digits.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseAmount].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	var err error
	*a, err = ParseAmount(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends a fixed 2-decimal string.
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (a Amount) AppendText(text []byte) ([]byte, error) {
	return append(text, a.String()...), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns a fixed 2-decimal string.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Scan implements the [sql.Scanner] interface.
// Strings and byte slices are parsed as decimal text, int64 values are
// taken as cents, and float64 values go through [NewAmountFromFloat64].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (a *Amount) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*a, err = ParseAmount(value)
	case []byte:
		*a, err = ParseAmount(string(value))
	case int64:
		*a = NewAmountFromCents(value)
	case float64:
		*a, err = NewAmountFromFloat64(value)
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Amount{}, NullAmount{}, Amount{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Amount{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Value always returns a fixed 2-decimal string.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// NullAmount represents an amount that can be null.
// Its zero value is null.
// NullAmount is not thread-safe.
type NullAmount struct {
	Amount Amount
	Valid  bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Amount.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullAmount) Scan(value any) error {
	if value == nil {
		n.Amount = Amount{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Amount.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Amount.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullAmount) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Amount.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Amount.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullAmount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		n.Amount = Amount{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Amount.UnmarshalJSON(text)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Amount.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullAmount) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Amount.MarshalJSON()
}
