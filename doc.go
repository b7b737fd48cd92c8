/*
Package money implements an immutable monetary value with exact-cent
precision.
It leverages the [decimal] package for exact decimal arithmetic and keeps a
signed integer number of cents as the canonical representation, so no
computation ever touches binary floating point.

# Representation

An [Amount] holds an integer cent count together with the equivalent decimal
value rounded to exactly 2 fractional digits at construction time.
The two stay equal by construction: the decimal is always cents / 100.
Amounts are plain values; copying is cheap and always safe, and every
operation returns a new Amount.

# Construction

Amounts are built from decimals, floats, integers, cent counts, or decimal
strings via the NewAmount* constructors and [ParseAmount].
Inputs that do not represent a real number, including NaN, fail with
[ErrInvalidAmount] at construction time, before any arithmetic can observe
them.
Free-text input goes through [Parse], which delegates to a pluggable
[Parser] configured once at startup with [SetParser].

# Operations

Addition, subtraction, and scalar multiplication preserve exact cents and
re-round every result.
Direct division is refused with [ErrUnsupportedOperation] because it can
silently lose pennies; callers distribute money with [Amount.Split] (equal
parts) or [Amount.Allocate] (weighted ratios) instead, both of which
guarantee that the parts sum exactly to the whole.
[Amount.Fraction] extracts a pre-rate base from a rate-inclusive total, for
reverse tax calculations.

# Rounding

Wherever an intermediate result can carry fractional cents, it is rounded
to 2 fractional digits using rounding half away from zero.
Leftover cents produced by flooring during allocation are redistributed one
at a time starting at index 0, so earlier parties are deterministically
favored.

# Errors

Failed operations return the zero Amount (or a nil slice) together with an
error wrapping one of [ErrInvalidAmount], [ErrInvalidArgument],
[ErrTypeMismatch], or [ErrUnsupportedOperation].
There are no partial results and no deferred error reporting.
*/
package money
