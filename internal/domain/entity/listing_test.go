package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePriceDonation(t *testing.T) {
	// A stale stored price must never surface on a donation listing.
	l := &Listing{Condition: ConditionDonation, Price: 500}

	assert.Equal(t, int64(0), l.EffectivePrice())
	assert.True(t, l.IsFree())
}

func TestEffectivePriceRegular(t *testing.T) {
	l := &Listing{Condition: ConditionGood, Price: 25}

	assert.Equal(t, int64(25), l.EffectivePrice())
	assert.False(t, l.IsFree())
}

func TestConditionValid(t *testing.T) {
	assert.True(t, ConditionLikeNew.Valid())
	assert.True(t, ConditionDonation.Valid())
	assert.False(t, Condition("mint").Valid())
	assert.False(t, Condition("").Valid())
}
