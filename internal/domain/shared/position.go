package shared

import "fmt"

// MaxRange is reported by RangeTo for positions in different rooms
const MaxRange = 1<<31 - 1

// RoomSize is the width and height of a room grid
const RoomSize = 50

// Direction is one of the eight compass directions a worker can step in
type Direction int

const (
	DirectionTop Direction = iota + 1
	DirectionTopRight
	DirectionRight
	DirectionBottomRight
	DirectionBottom
	DirectionBottomLeft
	DirectionLeft
	DirectionTopLeft
)

var directionNames = map[Direction]string{
	DirectionTop:         "TOP",
	DirectionTopRight:    "TOP_RIGHT",
	DirectionRight:       "RIGHT",
	DirectionBottomRight: "BOTTOM_RIGHT",
	DirectionBottom:      "BOTTOM",
	DirectionBottomLeft:  "BOTTOM_LEFT",
	DirectionLeft:        "LEFT",
	DirectionTopLeft:     "TOP_LEFT",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// IsValid reports whether d is one of the eight compass directions
func (d Direction) IsValid() bool {
	return d >= DirectionTop && d <= DirectionTopLeft
}

// Offset returns the grid delta for a single step in direction d
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirectionTop:
		return 0, -1
	case DirectionTopRight:
		return 1, -1
	case DirectionRight:
		return 1, 0
	case DirectionBottomRight:
		return 1, 1
	case DirectionBottom:
		return 0, 1
	case DirectionBottomLeft:
		return -1, 1
	case DirectionLeft:
		return -1, 0
	case DirectionTopLeft:
		return -1, -1
	}
	return 0, 0
}

// ParseDirection converts a direction name such as "TOP_LEFT" to a Direction
func ParseDirection(name string) (Direction, error) {
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return 0, NewValidationError("direction", fmt.Sprintf("unknown direction %q", name))
}

// Position is an immutable location on a room grid
type Position struct {
	Room string `json:"room" yaml:"room"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
}

// NewPosition creates a position with validation
func NewPosition(room string, x, y int) (Position, error) {
	if room == "" {
		return Position{}, NewValidationError("room", "cannot be empty")
	}
	if x < 0 || x >= RoomSize || y < 0 || y >= RoomSize {
		return Position{}, NewValidationError("position", fmt.Sprintf("(%d,%d) outside room grid", x, y))
	}
	return Position{Room: room, X: x, Y: y}, nil
}

// RangeTo returns the Chebyshev distance to other, or MaxRange across rooms
func (p Position) RangeTo(other Position) int {
	if p.Room != other.Room {
		return MaxRange
	}
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// IsNearTo reports whether other is on the same tile or one of the eight around it
func (p Position) IsNearTo(other Position) bool {
	return p.RangeTo(other) <= 1
}

// IsEqualTo reports whether both positions name the same tile
func (p Position) IsEqualTo(other Position) bool {
	return p == other
}

// Step returns the position one tile away in direction d
func (p Position) Step(d Direction) Position {
	dx, dy := d.Offset()
	return Position{Room: p.Room, X: p.X + dx, Y: p.Y + dy}
}

// DirectionTo returns the direction of the first step towards other.
// ok is false when other is in another room or is this same tile.
func (p Position) DirectionTo(other Position) (d Direction, ok bool) {
	if p.Room != other.Room || p == other {
		return 0, false
	}
	dx, dy := sign(other.X-p.X), sign(other.Y-p.Y)
	for dir := DirectionTop; dir <= DirectionTopLeft; dir++ {
		ox, oy := dir.Offset()
		if ox == dx && oy == dy {
			return dir, true
		}
	}
	return 0, false
}

func (p Position) String() string {
	return fmt.Sprintf("[%s %d,%d]", p.Room, p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
