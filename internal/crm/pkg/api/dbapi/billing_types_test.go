package dbapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineItem_ComputeAmount(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want int64
	}{
		{
			name: "quantity times unit price",
			item: LineItem{Quantity: 3, UnitCents: 25000},
			want: 75000,
		},
		{
			name: "discount reduces the amount",
			item: LineItem{Quantity: 2, UnitCents: 10000, DiscountCents: 2500},
			want: 17500,
		},
		{
			name: "discount larger than the line clamps to zero",
			item: LineItem{Quantity: 1, UnitCents: 5000, DiscountCents: 9000},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.item.ComputeAmount()
			assert.Equal(t, tt.want, tt.item.AmountCents)
		})
	}
}

func TestLineItem_TaxCents(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want int64
	}{
		{
			name: "zero rate owes no tax",
			item: LineItem{AmountCents: 10000},
			want: 0,
		},
		{
			name: "whole percentage",
			item: LineItem{AmountCents: 10000, TaxRateBps: 825},
			want: 825,
		},
		{
			name: "fractional cent rounds half up",
			item: LineItem{AmountCents: 999, TaxRateBps: 825},
			// 999 * 0.0825 = 82.4175, rounds to 82
			want: 82,
		},
		{
			name: "midpoint rounds up",
			item: LineItem{AmountCents: 1000, TaxRateBps: 50},
			// 1000 * 0.005 = 5.0 exactly, no rounding needed
			want: 5,
		},
		{
			name: "just above midpoint rounds up",
			item: LineItem{AmountCents: 1100, TaxRateBps: 50},
			// 1100 * 0.005 = 5.5, rounds to 6
			want: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.TaxCents())
		})
	}
}
