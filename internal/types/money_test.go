package types

import "testing"

func TestMoney_String(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{USD(19), "$19"},
		{Money{Amount: 1950, Currency: "USD"}, "$19.50"},
		{Money{Amount: 500, Currency: "EUR"}, "EUR 5"},
		{Money{Amount: -150, Currency: "USD"}, "-$1.50"},
		{Money{Amount: -5, Currency: "USD"}, "-$0.05"},
		{USD(-3), "-$3"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%+v.String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}
