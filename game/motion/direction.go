package motion

import "fmt"

// Direction is one of the eight compass directions the actor can face, or None
type Direction int

const (
	None Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// DefaultSpeed is the actor speed in world units per second on each axis
const DefaultSpeed = 160.0

var directionNames = map[Direction]string{
	None:      "none",
	North:     "north",
	NorthEast: "north-east",
	East:      "east",
	SouthEast: "south-east",
	South:     "south",
	SouthWest: "south-west",
	West:      "west",
	NorthWest: "north-west",
}

// Compass lists the eight facing directions clockwise from north
func Compass() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection returns the direction with the given name
func ParseDirection(name string) (Direction, error) {
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return None, fmt.Errorf("unknown direction %q", name)
}

// Input is the held state of the four directional controls for one tick
type Input struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Pressed reports whether any directional control is held
func (in Input) Pressed() bool {
	return in.Up || in.Down || in.Left || in.Right
}

// InputFor returns the input that walks toward d
func InputFor(d Direction) Input {
	switch d {
	case North:
		return Input{Up: true}
	case NorthEast:
		return Input{Up: true, Right: true}
	case East:
		return Input{Right: true}
	case SouthEast:
		return Input{Down: true, Right: true}
	case South:
		return Input{Down: true}
	case SouthWest:
		return Input{Down: true, Left: true}
	case West:
		return Input{Left: true}
	case NorthWest:
		return Input{Up: true, Left: true}
	}
	return Input{}
}

// Resolve converts held controls into a velocity and a facing direction.
// Horizontal controls set vx and vertical controls set vy; left wins over
// right and up wins over down. A vertical control held together with a
// horizontal one selects the diagonal between them.
func Resolve(in Input, speed float64) (vx, vy float64, dir Direction) {
	if in.Left {
		vx = -speed
	} else if in.Right {
		vx = speed
	}
	if in.Up {
		vy = -speed
	} else if in.Down {
		vy = speed
	}

	switch {
	case vy < 0 && vx < 0:
		dir = NorthWest
	case vy < 0 && vx > 0:
		dir = NorthEast
	case vy > 0 && vx < 0:
		dir = SouthWest
	case vy > 0 && vx > 0:
		dir = SouthEast
	case vy < 0:
		dir = North
	case vy > 0:
		dir = South
	case vx < 0:
		dir = West
	case vx > 0:
		dir = East
	default:
		dir = None
	}
	return vx, vy, dir
}
