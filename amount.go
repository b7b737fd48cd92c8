package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/govalues/decimal"
)

// Error kinds surfaced by this package.
// All errors are returned synchronously from the offending call and can be
// tested with [errors.Is].
var (
	// ErrInvalidAmount indicates a construction input that does not represent
	// a real number, such as NaN, an infinity, or a malformed decimal string.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidArgument indicates an out-of-range argument, such as a
	// negative rate, a ratio sum above 100%, or a non-positive party count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeMismatch indicates an operand that cannot be converted to an Amount.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedOperation indicates an operation that is disallowed
	// because it can silently lose pennies.
	ErrUnsupportedOperation = errors.New("unsupported operation: dividing money can lose pennies, use Split or Allocate instead")
)

var errAmountOverflow = errors.New("amount overflow")

// centsScale is the number of fractional digits in an amount.
const centsScale = 2

var (
	centUnit = decimal.MustNew(1, centsScale)   // 0.01
	halfCent = decimal.MustNew(5, centsScale+1) // 0.005
)

// Amount type represents a monetary amount in an implicit unit of account
// with exact-cent precision.
// The canonical representation is a signed integer number of cents; the
// decimal value is always equal to cents / 100 exactly.
// The zero value corresponds to 0.00.
// Amount is immutable and safe for concurrent use by multiple goroutines.
//
// The zero value's embedded decimal has scale 0 rather than 2, so compare
// amounts with [Amount.Equal] or [Amount.Cmp] rather than ==.
type Amount struct {
	cents int64           // canonical exact representation
	value decimal.Decimal // cents / 100, scale 2 when constructed
}

// newAmountFromCents creates an amount directly from an integer cent count.
// This is the single trusted construction path; every constructor funnels
// through it once rounding is done.
func newAmountFromCents(cents int64) Amount {
	return Amount{cents: cents, value: decimal.MustNew(cents, centsScale)}
}

// decimalToCents converts a decimal to an exact cent count, rounding half
// away from zero at the second fractional digit: 2.675 rounds to 268 cents,
// -2.675 to -268.
func decimalToCents(d decimal.Decimal) (int64, error) {
	q, r, err := d.QuoRem(centUnit)
	if err != nil {
		return 0, err
	}
	cents, _, ok := q.Int64(0)
	if !ok {
		return 0, errAmountOverflow
	}
	if r.CmpAbs(halfCent) >= 0 {
		if d.IsNeg() {
			if cents == math.MinInt64 {
				return 0, errAmountOverflow
			}
			cents--
		} else {
			if cents == math.MaxInt64 {
				return 0, errAmountOverflow
			}
			cents++
		}
	}
	return cents, nil
}

// NewAmount converts a decimal to an amount, rounding it to 2 fractional
// digits using [rounding half away from zero].
// No residual fractional cents survive construction.
//
// NewAmount returns an error if the result does not fit in an int64 number
// of cents.
//
// [rounding half away from zero]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_away_from_zero
func NewAmount(d decimal.Decimal) (Amount, error) {
	cents, err := decimalToCents(d)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v to cents: %w", d, err)
	}
	return newAmountFromCents(cents), nil
}

// NewAmountFromCents converts an integer, representing cents, to an amount.
// The conversion is exact and never fails.
// See also method [Amount.Cents].
func NewAmountFromCents(cents int64) Amount {
	return newAmountFromCents(cents)
}

// NewAmountFromInt64 converts an integer, representing whole units, to an amount.
//
// NewAmountFromInt64 returns an error if the result does not fit in an int64
// number of cents.
func NewAmountFromInt64(units int64) (Amount, error) {
	if units > math.MaxInt64/100 || units < math.MinInt64/100 {
		return Amount{}, fmt.Errorf("converting %v units: %w", units, errAmountOverflow)
	}
	return newAmountFromCents(units * 100), nil
}

// NewAmountFromFloat64 converts a float to a (possibly rounded) amount.
// The float is converted through its exact decimal representation, never
// through binary floating-point arithmetic.
// See also method [Amount.Float64].
//
// NewAmountFromFloat64 returns [ErrInvalidAmount] if the float is a special
// value (NaN or Inf) or is too large to represent as cents.
func NewAmountFromFloat64(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, fmt.Errorf("converting float %v: %w", f, ErrInvalidAmount)
	}
	d, err := decimal.Parse(strconv.FormatFloat(f, 'f', -1, 64))
	if err != nil {
		return Amount{}, fmt.Errorf("converting float %v: %w", f, ErrInvalidAmount)
	}
	a, err := NewAmount(d)
	if err != nil {
		return Amount{}, fmt.Errorf("converting float %v: %w", f, ErrInvalidAmount)
	}
	return a, nil
}

// ParseAmount converts a decimal string to a (possibly rounded) amount.
// This is the built-in parser; free-text input should go through [Parse],
// which delegates to the configured [Parser].
//
// ParseAmount returns [ErrInvalidAmount] if the string does not represent
// a real number.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing %q: %w", s, ErrInvalidAmount)
	}
	a, err := NewAmount(d)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing %q: %w", s, ErrInvalidAmount)
	}
	return a, nil
}

// MustParseAmount is like [ParseAmount] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q) failed: %v", s, err))
	}
	return a
}

// Decimaler is the capability interface for types that can convert
// themselves to an exact decimal.
// Types implementing Decimaler are accepted by [From].
type Decimaler interface {
	ToDecimal() (decimal.Decimal, error)
}

// From converts an arbitrary value to an amount.
// It accepts integers, floats, decimal strings, [decimal.Decimal], Amount,
// and any type implementing [Decimaler].
//
// From returns [ErrTypeMismatch] if the dynamic type is not convertible,
// and [ErrInvalidAmount] if the type is acceptable but the value does not
// represent a real number.
func From(v any) (Amount, error) {
	switch v := v.(type) {
	case Amount:
		return v, nil
	case decimal.Decimal:
		return NewAmount(v)
	case int:
		return NewAmountFromInt64(int64(v))
	case int32:
		return NewAmountFromInt64(int64(v))
	case int64:
		return NewAmountFromInt64(v)
	case float32:
		return NewAmountFromFloat64(float64(v))
	case float64:
		return NewAmountFromFloat64(v)
	case string:
		return ParseAmount(v)
	case Decimaler:
		d, err := v.ToDecimal()
		if err != nil {
			return Amount{}, fmt.Errorf("converting %T: %w", v, ErrInvalidAmount)
		}
		return NewAmount(d)
	default:
		return Amount{}, fmt.Errorf("converting %T: %w", v, ErrTypeMismatch)
	}
}

// Cents returns the amount as an integer number of cents.
// This is the canonical machine representation and is exact.
// See also constructor [NewAmountFromCents].
func (a Amount) Cents() int64 {
	return a.cents
}

// Decimal returns the decimal representation of the amount.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Int64 returns the amount truncated to whole units, discarding cents.
// The conversion is lossy: both 1.99 and 1.01 become 1.
// See also method [Amount.Cents].
func (a Amount) Int64() int64 {
	return a.cents / 100
}

// Float64 returns the nearest binary floating-point number.
// The result is for display and interop only and must not be fed back into
// monetary computation.
// See also constructor [NewAmountFromFloat64].
func (a Amount) Float64() (f float64, ok bool) {
	return a.value.Float64()
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	switch {
	case a.cents < 0:
		return -1
	case a.cents > 0:
		return 1
	}
	return 0
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.cents == 0
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.cents < 0
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPos() bool {
	return a.cents > 0
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	if a.cents < 0 {
		return a.Neg()
	}
	return a
}

// Neg returns an amount with the opposite sign.
func (a Amount) Neg() Amount {
	return newAmountFromCents(-a.cents)
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// The order is total and is defined by integer cents comparison.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.cents < b.cents:
		return -1
	case a.cents > b.cents:
		return 1
	}
	return 0
}

// Equal reports whether amounts represent the same monetary value.
// Equality is defined by decimal comparison, which by the construction
// invariant coincides with cents equality.
func (a Amount) Equal(b Amount) bool {
	return a.value.Cmp(b.value) == 0
}

// Min returns the smaller amount.
func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger amount.
func (a Amount) Max(b Amount) Amount {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Add returns the sum of amounts a and b.
// The sum is exact: (a + b).Cents() = a.Cents() + b.Cents().
//
// Add returns an error if the result does not fit in an int64 number of cents.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	d, err := a.value.AddExact(b.value, centsScale)
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(d)
}

// Sub returns the difference between amounts a and b.
// The difference is exact: (a - b).Cents() = a.Cents() - b.Cents().
//
// Sub returns an error if the result does not fit in an int64 number of cents.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.add(b.Neg())
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

// Mul returns the product of amount a and factor e, rounded to cents half
// away from zero.
//
// Mul returns an error if the result does not fit in an int64 number of cents.
func (a Amount) Mul(e decimal.Decimal) (Amount, error) {
	c, err := a.mul(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) mul(e decimal.Decimal) (Amount, error) {
	d, err := a.value.Mul(e)
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(d)
}

// MulFloat64 is like [Amount.Mul] for callers holding a plain numeric scalar.
// The scalar is converted through its exact decimal representation first.
//
// MulFloat64 returns [ErrInvalidAmount] if the scalar is NaN or Inf.
func (a Amount) MulFloat64(e float64) (Amount, error) {
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, ErrInvalidAmount)
	}
	d, err := decimal.Parse(strconv.FormatFloat(e, 'f', -1, 64))
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, ErrInvalidAmount)
	}
	return a.Mul(d)
}

// Div always fails with [ErrUnsupportedOperation].
// Dividing an amount can produce fractional cents that silently vanish;
// use [Amount.Split] or [Amount.Allocate], which never create or lose cents.
// This is a deliberate safety rail, not an oversight.
func (a Amount) Div(b Amount) (Amount, error) {
	return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, b, ErrUnsupportedOperation)
}

// Fraction returns a / (1 + rate), rounded to cents half away from zero.
// It extracts the pre-rate base from a rate-inclusive total, for example the
// net price from a gross price with a known tax rate.
// Unlike [Amount.Div], the denominator here is a fixed scalar, so the real
// division is immediately re-rounded to cents.
//
// Fraction returns [ErrInvalidArgument] if the rate is negative.
func (a Amount) Fraction(rate decimal.Decimal) (Amount, error) {
	c, err := a.fraction(rate)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / (1 + %v)]: %w", a, rate, err)
	}
	return c, nil
}

func (a Amount) fraction(rate decimal.Decimal) (Amount, error) {
	if rate.IsNeg() {
		return Amount{}, fmt.Errorf("%w: negative rate", ErrInvalidArgument)
	}
	denom, err := rate.Add(rate.One())
	if err != nil {
		return Amount{}, err
	}
	d, err := a.value.Quo(denom)
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(d)
}

// String implements the [fmt.Stringer] interface and returns the amount
// formatted with a fixed 2 fractional digits, such as "123.45" or "-0.07".
// Together with [Amount.Cents] this is one of the two stable external
// representations.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	var buf [24]byte
	pos := len(buf) - 1

	neg := a.cents < 0
	u := uint64(a.cents)
	if neg {
		u = -u
	}

	// Fractional digits
	for i := 0; i < centsScale; i++ {
		buf[pos] = byte(u%10) + '0'
		pos--
		u /= 10
	}

	// Decimal point
	buf[pos] = '.'
	pos--

	// Integer digits
	for {
		buf[pos] = byte(u%10) + '0'
		pos--
		u /= 10
		if u == 0 {
			break
		}
	}

	// Sign
	if neg {
		buf[pos] = '-'
		pos--
	}

	return string(buf[pos+1:])
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example | Description     |
//	| ------ | ------- | --------------- |
//	| %s, %v | 5.67    | Amount          |
//	| %f     | 5.67    | Amount          |
//	| %q     | "5.67"  | Quoted amount   |
//	| %d     | 567     | Amount in cents |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	var s string
	switch verb {
	case 's', 'S', 'v', 'V', 'f', 'F':
		s = a.String()
	case 'q', 'Q':
		s = "\"" + a.String() + "\""
	case 'd', 'D':
		s = strconv.FormatInt(a.cents, 10)
	default:
		//nolint:errcheck
		fmt.Fprintf(state, "%%!%c(money.Amount=%s)", verb, a.String())
		return
	}

	// Calculating padding
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > len(s) {
		if state.Flag('-') {
			tspaces = w - len(s)
		} else {
			lspaces = w - len(s)
		}
	}

	buf := make([]byte, 0, lspaces+len(s)+tspaces)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	buf = append(buf, s...)
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}
	//nolint:errcheck
	state.Write(buf)
}
