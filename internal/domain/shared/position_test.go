package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

func TestPosition_RangeToIsChebyshev(t *testing.T) {
	a := shared.Position{Room: "W1N1", X: 10, Y: 10}

	assert.Equal(t, 0, a.RangeTo(a))
	assert.Equal(t, 3, a.RangeTo(shared.Position{Room: "W1N1", X: 13, Y: 8}))
	assert.Equal(t, shared.MaxRange, a.RangeTo(shared.Position{Room: "W2N1", X: 10, Y: 10}))
}

func TestPosition_IsNearTo(t *testing.T) {
	a := shared.Position{Room: "W1N1", X: 10, Y: 10}

	assert.True(t, a.IsNearTo(a))
	assert.True(t, a.IsNearTo(shared.Position{Room: "W1N1", X: 11, Y: 9}))
	assert.False(t, a.IsNearTo(shared.Position{Room: "W1N1", X: 12, Y: 10}))
	assert.False(t, a.IsNearTo(shared.Position{Room: "W2N1", X: 10, Y: 10}))
}

func TestPosition_StepAndDirectionToAgree(t *testing.T) {
	origin := shared.Position{Room: "W1N1", X: 25, Y: 25}

	for d := shared.DirectionTop; d <= shared.DirectionTopLeft; d++ {
		next := origin.Step(d)
		got, ok := origin.DirectionTo(next)
		require.True(t, ok, d.String())
		assert.Equal(t, d, got)
	}

	_, ok := origin.DirectionTo(origin)
	assert.False(t, ok)
}

func TestNewPosition_RejectsOffGrid(t *testing.T) {
	_, err := shared.NewPosition("W1N1", 50, 0)
	assert.Error(t, err)

	_, err = shared.NewPosition("", 1, 1)
	assert.Error(t, err)

	pos, err := shared.NewPosition("W1N1", 49, 0)
	require.NoError(t, err)
	assert.Equal(t, "[W1N1 49,0]", pos.String())
}

func TestParseDirection(t *testing.T) {
	d, err := shared.ParseDirection("BOTTOM_LEFT")
	require.NoError(t, err)
	assert.Equal(t, shared.DirectionBottomLeft, d)

	_, err = shared.ParseDirection("UP")
	var validationErr *shared.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestIDGenerator_IsMonotonic(t *testing.T) {
	ids := shared.NewIDGenerator()

	assert.Equal(t, 0, ids.Generate())
	assert.Equal(t, 1, ids.Generate())
	assert.Equal(t, 2, ids.NextID)
}
