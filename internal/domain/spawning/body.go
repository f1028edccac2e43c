package spawning

import (
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/pkg/utils"
)

const (
	// SourceEnergyCapacity is how much energy a resource node regenerates to
	SourceEnergyCapacity = 3000

	// EnergyRegenTime is the number of ticks between resource node refills
	EnergyRegenTime = 300

	// HarvestPowerPerWork is the energy one WORK part extracts per tick
	HarvestPowerPerWork = 2
)

// RequiredWorkParts is the number of WORK parts that drain a node exactly
// within one regeneration window
const RequiredWorkParts = SourceEnergyCapacity / EnergyRegenTime / HarvestPowerPerWork

// BodyPolicy sizes a worker for the energy the spawning room can spend
type BodyPolicy func(energyAvailable int) []shared.Part

// HarvesterBody builds a stationary extractor: WORK parts only, towed into place.
func HarvesterBody(energyAvailable int) []shared.Part {
	work := shared.PartWork.Cost()
	extra := utils.Max(0, (energyAvailable-work)/work)

	body := []shared.Part{shared.PartWork}
	for i := 0; i < utils.Min(extra, RequiredWorkParts-1); i++ {
		body = append(body, shared.PartWork)
	}
	return body
}

// MobileHarvesterBody builds an extractor that walks to its node on its own
func MobileHarvesterBody(energyAvailable int) []shared.Part {
	base := shared.PartMove.Cost() + shared.PartCarry.Cost() + shared.PartWork.Cost()
	extra := utils.Max(0, (energyAvailable-base)/shared.PartWork.Cost())

	body := []shared.Part{shared.PartMove, shared.PartCarry, shared.PartWork}
	for i := 0; i < utils.Min(extra, RequiredWorkParts-1); i++ {
		body = append(body, shared.PartWork)
	}
	return body
}

// HaulerBody builds a transporter.
// TODO: size CARRY parts from haul distance and node output instead of a fixed body.
func HaulerBody(_ int) []shared.Part {
	return []shared.Part{shared.PartMove, shared.PartCarry, shared.PartMove, shared.PartCarry}
}
