package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	cases := map[string]string{
		"1.005":  "1.01",
		"1.004":  "1",
		"2.675":  "2.68",
		"10":     "10",
		"0.125":  "0.13",
		"99.995": "100",
	}
	for in, want := range cases {
		got := Round(decimal.RequireFromString(in))
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s rounded to %s", in, got)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "180.00", Format(decimal.NewFromInt(180)))
	assert.Equal(t, "0.50", Format(decimal.RequireFromString("0.5")))
}

func TestPercentAndRemaining(t *testing.T) {
	amount := decimal.NewFromInt(200)
	assert.True(t, Percent(amount, decimal.NewFromInt(10)).Equal(decimal.NewFromInt(20)))
	assert.True(t, Remaining(decimal.NewFromInt(25)).Equal(decimal.RequireFromString("0.75")))
}
