package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"", 0},
		{"0", 0},
		{"12.34", 1234},
		{"12.3", 1230},
		{"12", 1200},
		{".5", 50},
		{"1999.99", 199999},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}

	neg, err := ParseMoney("-3.50")
	require.NoError(t, err)
	require.Equal(t, Money(-350), neg)

	for _, in := range []string{"12.345", "abc", "12.-1", "1-2", "-", ".", "1.2.3"} {
		_, err := ParseMoney(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestMoneyString(t *testing.T) {
	require.Equal(t, "0.00", Money(0).String())
	require.Equal(t, "12.34", Money(1234).String())
	require.Equal(t, "12.05", Money(1205).String())
	require.Equal(t, "0.09", Money(9).String())
	require.Equal(t, "-3.50", Money(-350).String())
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want Quantity
	}{
		{"", 0},
		{"3", 3000},
		{"2.5", 2500},
		{"0.125", 125},
	}
	for _, tc := range cases {
		got, err := ParseQuantity(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}

	for _, in := range []string{"1.2345", "-1", "-0.5", "2.-5", "-", "."} {
		_, err := ParseQuantity(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestQuantityStringShortestExact(t *testing.T) {
	require.Equal(t, "3", Quantity(3000).String())
	require.Equal(t, "2.5", Quantity(2500).String())
	require.Equal(t, "0.125", Quantity(125).String())
	require.Equal(t, "0", Quantity(0).String())
}

func TestLineTotal(t *testing.T) {
	// 2.5 * 19.99 = 49.975, rounds half-up to 49.98
	require.Equal(t, Money(4998), LineTotal(2500, 1999))
	// 3 * 12.34 = 37.02 exactly
	require.Equal(t, Money(3702), LineTotal(3000, 1234))
	require.Equal(t, Money(0), LineTotal(0, 1999))
	require.Equal(t, Money(0), LineTotal(2500, 0))
}

func TestDraftValidate(t *testing.T) {
	valid := DraftInput{CustomerName: "A. Perera", Telephone: "0771234567"}
	require.Equal(t, "", valid.Validate())
	require.Equal(t, "Cash", valid.PaymentMethod, "empty payment method defaults to Cash")

	missingName := DraftInput{Telephone: "0771234567"}
	require.Equal(t, "customer_name is required", missingName.Validate())

	missingPhone := DraftInput{CustomerName: "A. Perera"}
	require.Equal(t, "telephone is required", missingPhone.Validate())

	badMethod := DraftInput{CustomerName: "A. Perera", Telephone: "077", PaymentMethod: "Barter"}
	require.NotEqual(t, "", badMethod.Validate())

	badQty := DraftInput{
		CustomerName: "A. Perera", Telephone: "077",
		Items: []DraftItemInput{{Description: "Consultation", Quantity: "two"}},
	}
	require.NotEqual(t, "", badQty.Validate())

	negQty := DraftInput{
		CustomerName: "A. Perera", Telephone: "077",
		Items: []DraftItemInput{{Description: "Consultation", Quantity: "-0.5", UnitPrice: "8.00"}},
	}
	require.NotEqual(t, "", negQty.Validate())
}
