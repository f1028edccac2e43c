package shared

// Tick is the host's simulation step counter
type Tick uint32

// IDGenerator hands out small monotonic ids for colony sub-objects.
// It is persisted with the colony so ids stay unique across ticks.
type IDGenerator struct {
	NextID int `json:"next_id"`
}

// NewIDGenerator creates a generator starting at zero
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Generate returns the next id
func (g *IDGenerator) Generate() int {
	id := g.NextID
	g.NextID++
	return id
}
