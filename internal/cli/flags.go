package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// moneyValue is a pflag.Value for non-negative amounts with at most two
// decimal places.
type moneyValue struct {
	amount decimal.Decimal
	set    bool
}

var _ pflag.Value = (*moneyValue)(nil)

func (m *moneyValue) String() string {
	if !m.set {
		return ""
	}
	return m.amount.StringFixed(2)
}

func (m *moneyValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not an amount: %q", s)
	}
	if d.IsNegative() {
		return fmt.Errorf("amount must be non-negative, got %s", s)
	}
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("amount %s has more than two decimal places", s)
	}
	m.amount = d
	m.set = true
	return nil
}

func (m *moneyValue) Type() string {
	return "amount"
}
