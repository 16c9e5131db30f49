package loyalty

import (
	"testing"

	domainErrors "nushoplah/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestMultiplierFor(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		want    float64
	}{
		{"member floor", 0, 1.0},
		{"member ceiling", 499, 1.0},
		{"silver floor", 500, 1.25},
		{"silver ceiling", 1499, 1.25},
		{"gold floor", 1500, 1.5},
		{"gold ceiling", 4999, 1.5},
		{"platinum floor", 5000, 2.0},
		{"platinum high", 123456, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MultiplierFor(tt.balance))
		})
	}
}

func TestAwardPoints(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		amount  float64
		want    int
	}{
		{"member earns 1:1", 0, 100, 100},
		{"member fraction rounds half-up", 10, 10.5, 21},
		{"silver half point rounds up", 600, 50, 663}, // 600 + 50*1.25 = 662.5
		{"gold multiplier", 2000, 100, 2150},
		{"platinum multiplier", 5000, 100, 5200},
		{"zero amount is identity", 750, 0, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AwardPoints(tt.balance, tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("member tier matches plain addition", func(t *testing.T) {
		for balance := 0; balance < 500; balance += 7 {
			got, err := AwardPoints(balance, 42)
			assert.NoError(t, err)
			assert.Equal(t, balance+42, got)
		}
	})

	t.Run("negative result is rejected", func(t *testing.T) {
		_, err := AwardPoints(10, -1000)
		assert.ErrorIs(t, err, domainErrors.ErrNegativePoints)
	})
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierMember, TierFor(0))
	assert.Equal(t, TierSilver, TierFor(657))
	assert.Equal(t, TierGold, TierFor(3421))
	assert.Equal(t, TierPlatinum, TierFor(123456))
}

func TestPointsToNextTier(t *testing.T) {
	assert.Equal(t, 400, PointsToNextTier(100))
	assert.Equal(t, 1, PointsToNextTier(499))
	assert.Equal(t, 1000, PointsToNextTier(500))
	assert.Equal(t, 3500, PointsToNextTier(1500))
	assert.Equal(t, 0, PointsToNextTier(5000))
	assert.Equal(t, 0, PointsToNextTier(9000))
}
