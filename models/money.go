package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a monetary amount in cents. All arithmetic is integer-exact;
// floats never touch stored amounts.
type Money int64

// ParseMoney parses a decimal string like "12.34" into cents. At most two
// fractional digits are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	neg := strings.HasPrefix(s, "-")
	whole, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	// The sign has been consumed; anything left must be bare digits, or
	// "12.-1" style input would slip through ParseInt below.
	if (whole == "" && frac == "") || !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q: more than 2 decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return Money(cents), nil
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Quantity is a decimal quantity in thousandths (scale 3); enough for
// fractional doses and weights without float drift.
type Quantity int64

// QuantityOne is the quantity 1 at storage scale.
const QuantityOne Quantity = 1000

// ParseQuantity parses a decimal string like "2.5" into thousandths.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	whole, frac, _ := strings.Cut(s, ".")
	// Quantities are non-negative; a sign anywhere, including "-0.5",
	// fails the digit check.
	if (whole == "" && frac == "") || !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 3 {
		return 0, fmt.Errorf("invalid quantity %q: more than 3 decimal places", s)
	}
	for len(frac) < 3 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return Quantity(w*1000 + f), nil
}

// String renders the shortest exact form: "3" not "3.000", "2.5" not "2.500".
func (q Quantity) String() string {
	whole := int64(q) / 1000
	frac := int64(q) % 1000
	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}
	s := fmt.Sprintf("%d.%03d", whole, frac)
	return strings.TrimRight(s, "0")
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LineTotal computes quantity * unitPrice rounded half-up to the cent.
func LineTotal(q Quantity, price Money) Money {
	return Money((int64(q)*int64(price) + 500) / 1000)
}
