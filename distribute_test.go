package money

import (
	"errors"
	"testing"

	"github.com/govalues/decimal"
)

func mustRatios(ss ...string) []decimal.Decimal {
	rs := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		rs[i] = decimal.MustParse(s)
	}
	return rs
}

func cents(as []Amount) []int64 {
	cs := make([]int64, len(as))
	for i, a := range as {
		cs[i] = a.Cents()
	}
	return cs
}

func equalCents(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAmount_Split(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			a     string
			parts int
			want  []int64
		}{
			{"1.00", 1, []int64{100}},
			{"1.00", 3, []int64{34, 33, 33}},
			{"0.05", 2, []int64{3, 2}},
			{"0.02", 5, []int64{1, 1, 0, 0, 0}},
			{"100.00", 4, []int64{2500, 2500, 2500, 2500}},
			{"0.00", 3, []int64{0, 0, 0}},
			{"-1.00", 3, []int64{-33, -33, -34}},
			{"-0.05", 2, []int64{-2, -3}},
		}
		for _, tt := range tests {
			a := MustParseAmount(tt.a)
			got, err := a.Split(tt.parts)
			if err != nil {
				t.Errorf("%q.Split(%v) failed: %v", a, tt.parts, err)
				continue
			}
			if !equalCents(cents(got), tt.want) {
				t.Errorf("%q.Split(%v) = %v, want %v", a, tt.parts, cents(got), tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		a := MustParseAmount("1.00")
		for name, parts := range map[string]int{"zero": 0, "negative": -1} {
			t.Run(name, func(t *testing.T) {
				if _, err := a.Split(parts); !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("%q.Split(%v) = %v, want %v", a, parts, err, ErrInvalidArgument)
				}
			})
		}
	})
}

// The sum of the parts must equal the original cents for every amount and
// party count, and the higher shares must be the leading ones.
func TestAmount_Split_invariants(t *testing.T) {
	for c := int64(-250); c <= 250; c++ {
		a := NewAmountFromCents(c)
		for parts := 1; parts <= 7; parts++ {
			got, err := a.Split(parts)
			if err != nil {
				t.Fatalf("%q.Split(%v) failed: %v", a, parts, err)
			}
			if len(got) != parts {
				t.Fatalf("%q.Split(%v) returned %v parts", a, parts, len(got))
			}
			sum := int64(0)
			for i, p := range got {
				sum += p.Cents()
				if i > 0 && p.Cmp(got[i-1]) > 0 {
					t.Errorf("%q.Split(%v) = %v, parts are not descending", a, parts, cents(got))
				}
				if diff := got[0].Cents() - p.Cents(); diff != 0 && diff != 1 {
					t.Errorf("%q.Split(%v) = %v, parts differ by more than one cent", a, parts, cents(got))
				}
			}
			if sum != c {
				t.Errorf("%q.Split(%v) = %v, sums to %v, want %v", a, parts, cents(got), sum, c)
			}
		}
	}
}

func TestAmount_Allocate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			a      string
			ratios []string
			want   []int64
		}{
			{"5.00", []string{"0.3", "0.7"}, []int64{150, 350}},
			{"1.00", []string{"0.3333", "0.3333", "0.3334"}, []int64{34, 33, 33}},
			{"1.00", []string{"1"}, []int64{100}},
			{"1.00", []string{"0.25", "0.25"}, []int64{50, 50}},
			{"0.05", []string{"0.3", "0.7"}, []int64{2, 3}},
			{"100.00", []string{"0.1", "0.2", "0.3", "0.4"}, []int64{1000, 2000, 3000, 4000}},
			{"0.00", []string{"0.5", "0.5"}, []int64{0, 0}},
			{"0.03", []string{"0.5", "0", "0.5"}, []int64{2, 0, 1}},
			{"-1.00", []string{"0.3333", "0.3333", "0.3334"}, []int64{-33, -33, -34}},
		}
		for _, tt := range tests {
			a := MustParseAmount(tt.a)
			got, err := a.Allocate(mustRatios(tt.ratios...)...)
			if err != nil {
				t.Errorf("%q.Allocate(%v) failed: %v", a, tt.ratios, err)
				continue
			}
			if !equalCents(cents(got), tt.want) {
				t.Errorf("%q.Allocate(%v) = %v, want %v", a, tt.ratios, cents(got), tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			a      string
			ratios []string
		}{
			"over 100% 1":    {"1.00", []string{"0.6", "0.5"}},
			"over 100% 2":    {"1.00", []string{"1", "0.0001"}},
			"negative ratio": {"1.00", []string{"0.5", "-0.1"}},
			"no ratios":      {"1.00", nil},
			"zero ratios":    {"1.00", []string{"0", "0"}},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				a := MustParseAmount(tt.a)
				_, err := a.Allocate(mustRatios(tt.ratios...)...)
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("%q.Allocate(%v) = %v, want %v", a, tt.ratios, err, ErrInvalidArgument)
				}
			})
		}
	})
}

// A ratio list summing to exactly 100% must be accepted regardless of how
// many entries it has; the sum comparison is exact, not epsilon-based.
func TestAmount_Allocate_exactSum(t *testing.T) {
	ratios := make([]decimal.Decimal, 20)
	for i := range ratios {
		ratios[i] = decimal.MustParse("0.05")
	}
	a := MustParseAmount("1.00")
	got, err := a.Allocate(ratios...)
	if err != nil {
		t.Fatalf("%q.Allocate(20 x 0.05) failed: %v", a, err)
	}
	for i, p := range got {
		if p.Cents() != 5 {
			t.Errorf("%q.Allocate(20 x 0.05)[%v] = %v, want 5", a, i, p.Cents())
		}
	}
}

// No cents may be created or lost for any amount and ratio list.
func TestAmount_Allocate_invariants(t *testing.T) {
	ratioSets := [][]string{
		{"0.3333", "0.3333", "0.3334"},
		{"0.5", "0.5"},
		{"0.2", "0.3"},
		{"0.1", "0.1", "0.1"},
		{"0.07", "0.13", "0.8"},
		{"1"},
	}
	for _, set := range ratioSets {
		ratios := mustRatios(set...)
		for c := int64(-199); c <= 199; c++ {
			a := NewAmountFromCents(c)
			got, err := a.Allocate(ratios...)
			if err != nil {
				t.Fatalf("%q.Allocate(%v) failed: %v", a, set, err)
			}
			if len(got) != len(ratios) {
				t.Fatalf("%q.Allocate(%v) returned %v parts", a, set, len(got))
			}
			sum := int64(0)
			for _, p := range got {
				sum += p.Cents()
			}
			if sum != c {
				t.Errorf("%q.Allocate(%v) = %v, sums to %v, want %v", a, set, cents(got), sum, c)
			}
		}
	}
}
