package game

import "math/rand"

// FoodSpawner picks food cells uniformly among the free cells of a map.
type FoodSpawner struct {
	gameMap GameMap
	rng     *rand.Rand
}

func NewFoodSpawner(gameMap GameMap, rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{gameMap: gameMap, rng: rng}
}

// PlaceFood returns a random cell not in occupied, or false when the board is full.
func (fs *FoodSpawner) PlaceFood(occupied CellSet) (Cell, bool) {
	free := make([]Cell, 0, fs.gameMap.Area()-len(occupied))
	for _, cell := range fs.gameMap.AllCells() {
		if !occupied.Contains(cell) {
			free = append(free, cell)
		}
	}

	if len(free) == 0 {
		return Cell{}, false
	}

	return free[fs.rng.Intn(len(free))], true
}
