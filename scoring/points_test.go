package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacementPoints(t *testing.T) {
	tests := []struct {
		placement int
		want      int
	}{
		{placement: 1, want: 39},
		{placement: 2, want: 36},
		{placement: 3, want: 33},
		{placement: 11, want: 9},
		{placement: 12, want: 6},
		{placement: 13, want: 0},
		{placement: 0, want: 0},
		{placement: -4, want: 0},
		{placement: 100, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlacementPoints(tt.placement), "placement %d", tt.placement)
	}
}

func TestPlacementPointsTableIsStrictlyDecreasing(t *testing.T) {
	for p := 2; p <= LobbySize; p++ {
		assert.Equal(t, PlacementStep, PlacementPoints(p-1)-PlacementPoints(p))
	}
}

func TestKillPoints(t *testing.T) {
	for k := 0; k <= 40; k++ {
		assert.Equal(t, 2*k, KillPoints(k))
	}
	assert.Zero(t, KillPoints(0))
	assert.Zero(t, KillPoints(-3), "negative kills are clamped")
}

func TestResultPoints(t *testing.T) {
	assert.Equal(t, 49, ResultPoints(1, 5))
	assert.Equal(t, 40, ResultPoints(2, 2))
	assert.Equal(t, 8, ResultPoints(13, 4))
}
