package game

// GameMap holds the arena dimensions. It has no state beyond them.
type GameMap struct {
	Width  int
	Height int
}

func NewGameMap(width int, height int) GameMap {
	return GameMap{Width: width, Height: height}
}

func (gm GameMap) IsWithinBounds(cell Cell) bool {
	return cell.X >= 0 && cell.X < gm.Width && cell.Y >= 0 && cell.Y < gm.Height
}

// AllCells enumerates every cell column by column: x outer, y inner.
func (gm GameMap) AllCells() []Cell {
	cells := make([]Cell, 0, gm.Area())
	for x := 0; x < gm.Width; x++ {
		for y := 0; y < gm.Height; y++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

func (gm GameMap) Area() int {
	return gm.Width * gm.Height
}
