package spawning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/spawning"
)

func TestRequiredWorkParts(t *testing.T) {
	assert.Equal(t, 5, spawning.RequiredWorkParts)
}

func TestHarvesterBody(t *testing.T) {
	cases := []struct {
		energy int
		work   int
	}{
		{energy: 0, work: 1},
		{energy: 100, work: 1},
		{energy: 300, work: 3},
		{energy: 550, work: 5},
		{energy: 5000, work: 5},
	}

	for _, tc := range cases {
		body := spawning.HarvesterBody(tc.energy)
		assert.Equal(t, tc.work, shared.CountParts(body, shared.PartWork), "energy %d", tc.energy)
		assert.Len(t, body, tc.work)
	}
}

func TestMobileHarvesterBody(t *testing.T) {
	body := spawning.MobileHarvesterBody(400)

	assert.Equal(t, []shared.Part{shared.PartMove, shared.PartCarry, shared.PartWork, shared.PartWork, shared.PartWork}, body)
	assert.Equal(t, 400, shared.BodyCost(body))
	assert.Len(t, spawning.MobileHarvesterBody(10000), 7)
}

func TestHaulerBody_IsFixed(t *testing.T) {
	assert.Equal(t, spawning.HaulerBody(300), spawning.HaulerBody(3000))
	assert.Equal(t, 200, shared.BodyCost(spawning.HaulerBody(0)))
}
