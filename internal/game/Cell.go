package game

// Cell is one grid coordinate. Y grows upward.
type Cell struct {
	X, Y int
}

// Offset returns the neighbouring cell one step in dir.
func (c Cell) Offset(dir Direction) Cell {
	dx, dy := dir.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta is the unit step for d. Up is +y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps "up", "down", "left" and "right" to a Direction.
func ParseDirection(name string) (Direction, bool) {
	for _, dir := range Directions {
		if dir.String() == name {
			return dir, true
		}
	}
	return Up, false
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

func NewCellSet(cells ...Cell) CellSet {
	set := make(CellSet, len(cells))
	for _, cell := range cells {
		set[cell] = struct{}{}
	}
	return set
}

func (s CellSet) Contains(cell Cell) bool {
	_, ok := s[cell]
	return ok
}

func (s CellSet) Add(cell Cell) {
	s[cell] = struct{}{}
}
