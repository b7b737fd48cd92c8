package money

import (
	"errors"
	"strings"
	"testing"
)

// currencyParser strips a leading dollar sign and thousands separators
// before delegating to the built-in parser.
type currencyParser struct{}

func (currencyParser) Parse(s string) (Amount, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, ",", "")
	return ParseAmount(s)
}

func TestParse(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		got, err := Parse("12.34")
		if err != nil {
			t.Fatalf("Parse(\"12.34\") failed: %v", err)
		}
		if got.Cents() != 1234 {
			t.Errorf("Parse(\"12.34\").Cents() = %v, want 1234", got.Cents())
		}
		if _, err := Parse("$12.34"); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Parse(\"$12.34\") = %v, want %v", err, ErrInvalidAmount)
		}
	})

	t.Run("configured", func(t *testing.T) {
		SetParser(currencyParser{})
		t.Cleanup(func() { SetParser(ParserFunc(ParseAmount)) })

		tests := []struct {
			s    string
			want int64
		}{
			{"$1,234.56", 123456},
			{" $0.99", 99},
			{"12.34", 1234},
		}
		for _, tt := range tests {
			got, err := Parse(tt.s)
			if err != nil {
				t.Errorf("Parse(%q) failed: %v", tt.s, err)
				continue
			}
			if got.Cents() != tt.want {
				t.Errorf("Parse(%q).Cents() = %v, want %v", tt.s, got.Cents(), tt.want)
			}
		}

		if _, err := Parse("$abc"); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Parse(\"$abc\") = %v, want %v", err, ErrInvalidAmount)
		}
	})

	// A configured parser that already adds context must not have that
	// context repeated by Parse.
	t.Run("error context", func(t *testing.T) {
		SetParser(ParserFunc(ParseAmount))
		t.Cleanup(func() { SetParser(ParserFunc(ParseAmount)) })

		_, err := Parse("abc")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Parse(\"abc\") = %v, want %v", err, ErrInvalidAmount)
		}
		want := `parsing "abc": invalid amount`
		if got := err.Error(); got != want {
			t.Errorf("Parse(\"abc\") = %q, want %q", got, want)
		}
	})
}

func TestSetParser(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("SetParser(nil) did not panic")
			}
		}()
		SetParser(nil)
	})
}

func TestParserFunc(t *testing.T) {
	p := ParserFunc(func(string) (Amount, error) {
		return NewAmountFromCents(42), nil
	})
	got, err := p.Parse("anything")
	if err != nil {
		t.Fatalf("ParserFunc.Parse failed: %v", err)
	}
	if got.Cents() != 42 {
		t.Errorf("ParserFunc.Parse(\"anything\").Cents() = %v, want 42", got.Cents())
	}
}
