package game

type Collision int

const (
	CollisionNone Collision = iota
	CollisionOutOfBounds
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "ok"
	case CollisionOutOfBounds:
		return "out of bounds"
	case CollisionSelf:
		return "self collision"
	default:
		return "unknown"
	}
}

// CollisionDetector classifies head positions against the arena and a body.
type CollisionDetector struct {
	gameMap GameMap
}

func NewCollisionDetector(gameMap GameMap) CollisionDetector {
	return CollisionDetector{gameMap: gameMap}
}

// Classify checks the boundary first, so a head that is both outside the map
// and on the body reports CollisionOutOfBounds.
func (cd CollisionDetector) Classify(head Cell, body CellSet) Collision {
	if !cd.gameMap.IsWithinBounds(head) {
		return CollisionOutOfBounds
	}

	if body.Contains(head) {
		return CollisionSelf
	}

	return CollisionNone
}
