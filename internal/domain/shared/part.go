package shared

import "fmt"

// Part is a body part token used when spawning a worker
type Part string

const (
	PartMove         Part = "move"
	PartWork         Part = "work"
	PartCarry        Part = "carry"
	PartAttack       Part = "attack"
	PartRangedAttack Part = "ranged_attack"
	PartHeal         Part = "heal"
	PartTough        Part = "tough"
	PartClaim        Part = "claim"
)

// CarryCapacity is the amount of resource a single CARRY part can hold
const CarryCapacity = 50

var partCosts = map[Part]int{
	PartMove:         50,
	PartWork:         100,
	PartCarry:        50,
	PartAttack:       80,
	PartRangedAttack: 150,
	PartHeal:         250,
	PartTough:        10,
	PartClaim:        600,
}

// Cost returns the energy needed to spawn the part
func (p Part) Cost() int {
	return partCosts[p]
}

// ParsePart validates a part token
func ParsePart(token string) (Part, error) {
	p := Part(token)
	if _, ok := partCosts[p]; !ok {
		return "", NewValidationError("part", fmt.Sprintf("unknown body part %q", token))
	}
	return p, nil
}

// BodyCost sums the spawn cost of every part in body
func BodyCost(body []Part) int {
	total := 0
	for _, p := range body {
		total += p.Cost()
	}
	return total
}

// CountParts returns how many parts of kind appear in body
func CountParts(body []Part, kind Part) int {
	n := 0
	for _, p := range body {
		if p == kind {
			n++
		}
	}
	return n
}
