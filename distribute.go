package money

import (
	"fmt"

	"github.com/govalues/decimal"
)

var one = decimal.MustNew(1, 0)

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// If the original amount cannot be divided equally among the specified
// number of parts, the leftover cents are given to the first parts of the
// slice, one cent each.
// Exactly cents mod parts entries receive the higher share, and they are
// the leading entries.
// See also method [Amount.Allocate].
//
// Split returns [ErrInvalidArgument] if the number of parts is not a
// positive integer.
func (a Amount) Split(parts int) ([]Amount, error) {
	r, err := a.split(parts)
	if err != nil {
		return nil, fmt.Errorf("splitting %v into %v parts: %w", a, parts, err)
	}
	return r, nil
}

func (a Amount) split(parts int) ([]Amount, error) {
	if parts < 1 {
		return nil, fmt.Errorf("%w: number of parts must be positive", ErrInvalidArgument)
	}

	// Floored division, so negative amounts distribute the same way:
	// the leading parts carry the extra cent and the sum stays exact.
	low := a.cents / int64(parts)
	rem := a.cents % int64(parts)
	if rem < 0 {
		low--
		rem += int64(parts)
	}

	res := make([]Amount, parts)
	for i := range res {
		c := low
		if int64(i) < rem {
			c++
		}
		res[i] = newAmountFromCents(c)
	}
	return res, nil
}

// Allocate distributes the amount across the given ratios without creating
// or losing cents.
// Each party's raw share is the floor of cents * ratio / sum(ratios), so the
// actual ratio sum is the denominator and ratio lists summing to less than 1
// are normalized proportionally.
// Cents lost to flooring are then handed out one at a time, round-robin,
// starting at index 0 and wrapping around, so earlier parties are
// systematically favored when leftover cents exist.
// The result has the same length and order as the ratios, and its cents sum
// exactly to the original cents.
// See also method [Amount.Split].
//
// Allocate returns [ErrInvalidArgument] if:
//   - no ratios are given, or all ratios are zero;
//   - any ratio is negative;
//   - the ratios sum to more than 1.
//
// The ratio sum check is exact: ratios are decimals, so no floating-point
// tolerance is involved.
func (a Amount) Allocate(ratios ...decimal.Decimal) ([]Amount, error) {
	r, err := a.allocate(ratios)
	if err != nil {
		return nil, fmt.Errorf("allocating %v across %v ratios: %w", a, len(ratios), err)
	}
	return r, nil
}

func (a Amount) allocate(ratios []decimal.Decimal) ([]Amount, error) {
	if len(ratios) == 0 {
		return nil, fmt.Errorf("%w: no ratios", ErrInvalidArgument)
	}

	// Ratio sum
	sum := one.Zero()
	for _, r := range ratios {
		if r.IsNeg() {
			return nil, fmt.Errorf("%w: negative ratio %v", ErrInvalidArgument, r)
		}
		var err error
		sum, err = sum.Add(r)
		if err != nil {
			return nil, err
		}
	}
	if sum.IsZero() {
		return nil, fmt.Errorf("%w: ratios sum to zero", ErrInvalidArgument)
	}
	if sum.Cmp(one) > 0 {
		return nil, fmt.Errorf("%w: splits add to more than 100%%", ErrInvalidArgument)
	}

	total, err := decimal.New(a.cents, 0)
	if err != nil {
		return nil, err
	}

	// Floored shares
	res := make([]Amount, len(ratios))
	leftover := a.cents
	for i, r := range ratios {
		share, err := flooredShare(total, r, sum)
		if err != nil {
			return nil, err
		}
		res[i] = newAmountFromCents(share)
		leftover -= share
	}

	// Leftover cents, one at a time from index 0.
	// The flooring bound keeps leftover below the party count, but the
	// wrap-around still matters for robustness.
	for i := 0; leftover > 0; i = (i + 1) % len(res) {
		res[i] = newAmountFromCents(res[i].cents + 1)
		leftover--
	}
	return res, nil
}

// flooredShare computes floor(total * ratio / sum) exactly.
// QuoRem truncates toward zero, so a nonzero remainder on a negative
// dividend needs one more step down.
func flooredShare(total, ratio, sum decimal.Decimal) (int64, error) {
	num, err := total.Mul(ratio)
	if err != nil {
		return 0, err
	}
	q, r, err := num.QuoRem(sum)
	if err != nil {
		return 0, err
	}
	share, _, ok := q.Int64(0)
	if !ok {
		return 0, errAmountOverflow
	}
	if num.IsNeg() && !r.IsZero() {
		share--
	}
	return share, nil
}
