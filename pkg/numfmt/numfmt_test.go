package numfmt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/hotel-warehouse/pkg/numfmt"
)

func TestUnits(t *testing.T) {
	assert.Equal(t, "0", numfmt.Units(0))
	assert.Equal(t, "12,345", numfmt.Units(12345))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "₱1,234.50", numfmt.Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "₱0.00", numfmt.Money(decimal.Zero))
	assert.Equal(t, "-₱3.25", numfmt.Money(decimal.RequireFromString("-3.25")))
}
