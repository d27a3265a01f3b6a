package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderInProgress, true},
		{OrderPending, OrderCompleted, true},
		{OrderPending, OrderRejected, true},
		{OrderPending, OrderNotSerious, true},
		{OrderInProgress, OrderCompleted, true},
		{OrderInProgress, OrderRejected, true},
		{OrderInProgress, OrderNotSerious, true},
		{OrderInProgress, OrderPending, false},
		{OrderCompleted, OrderInProgress, false},
		{OrderCompleted, OrderRejected, false},
		{OrderRejected, OrderCompleted, false},
		{OrderRejected, OrderInProgress, false},
		{OrderNotSerious, OrderInProgress, false},
		{OrderPending, OrderPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderInProgress.IsTerminal())
	assert.True(t, OrderCompleted.IsTerminal())
	assert.True(t, OrderRejected.IsTerminal())
	assert.True(t, OrderNotSerious.IsTerminal())
}

func TestComputeMarketerProfit(t *testing.T) {
	assert.Equal(t, float64(300), ComputeMarketerProfit(1, 1300, 1000))
	assert.Equal(t, float64(750), ComputeMarketerProfit(3, 1250, 1000))
	assert.Equal(t, float64(-100), ComputeMarketerProfit(1, 900, 1000))
}

func TestPricingValid(t *testing.T) {
	suggested := func(f float64) *float64 { return &f }

	valid := Product{BasePrice: 1000, MinMarketerProfit: 200}
	assert.True(t, valid.PricingValid(), "no suggested price is fine")

	valid.SuggestedPrice = suggested(1200)
	assert.True(t, valid.PricingValid(), "the floor itself is acceptable")

	valid.SuggestedPrice = suggested(1199)
	assert.False(t, valid.PricingValid())

	free := Product{BasePrice: 0, MinMarketerProfit: 200}
	assert.False(t, free.PricingValid())
}
