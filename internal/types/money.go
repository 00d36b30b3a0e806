// README: Common money value object used across modules.
package types

import "fmt"

// Money is an amount in the currency's minor unit (cents for USD).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// USD returns a dollar amount given in whole dollars.
func USD(dollars int64) Money {
	return Money{Amount: dollars * 100, Currency: "USD"}
}

// String renders whole amounts without cents, e.g. "$19", "$19.50" or "-$1.50".
func (m Money) String() string {
	symbol := m.Currency + " "
	if m.Currency == "USD" {
		symbol = "$"
	}
	sign, amount := "", m.Amount
	if amount < 0 {
		sign, amount = "-", -amount
	}
	if amount%100 == 0 {
		return fmt.Sprintf("%s%s%d", sign, symbol, amount/100)
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, amount/100, amount%100)
}
