package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommodityStore_CalculateWorth(t *testing.T) {
	tests := []struct {
		name      string
		valuation string
		quantity  string
		want      string
	}{
		{"unit", "1.5", "1", "1.5"},
		{"several", "2", "2", "4"},
		{"fractional", "0.1", "3", "0.3"},
		{"zero quantity", "10", "0", "0"},
		{"negative quantity", "10", "-2", "-20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CommodityStore{
				Commodity: NewCommodity("Widget", decimal.RequireFromString(tt.valuation)),
				Quantity:  decimal.RequireFromString(tt.quantity),
			}
			assert.Equal(t, tt.want, s.CalculateWorth().String())
		})
	}
}

func TestCommodityStore_Equal(t *testing.T) {
	widget := NewCommodity("Widget", decimal.NewFromInt(10))
	a := CommodityStore{Commodity: widget, Quantity: decimal.RequireFromString("3")}
	b := CommodityStore{Commodity: widget, Quantity: decimal.RequireFromString("3.00")}
	c := CommodityStore{Commodity: widget, Quantity: decimal.NewFromInt(4)}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestMoney(t *testing.T) {
	m := Money(decimal.NewFromInt(20))

	assert.Equal(t, FederalReserveNote, m.Commodity.Name)
	assert.Equal(t, "20", m.Quantity.String())
	assert.Equal(t, "20", m.CalculateWorth().String())
}

func TestStat_MarshalJSON(t *testing.T) {
	s := CommodityStore{
		Commodity: NewCommodity("B", decimal.NewFromInt(2)),
		Quantity:  decimal.NewFromInt(2),
	}.Stat()

	b, err := json.Marshal(s)

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"B","valuation":2,"quantity":2,"subtotal":4}`, string(b))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"5", "5", false},
		{" 2.5 ", "2.5", false},
		{"-1", "-1", false},
		{"x", "", true},
		{"", "", true},
		{"NaN", "", true},
		{"1e32", "100000000000000000000000000000000", false},
		{"1e33", "", true},
		{"1e50000000", "", true},
		{"1e-33", "", true},
		{"0." + strings.Repeat("1", 63), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
