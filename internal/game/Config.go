package game

import "time"

const (
	ArenaWidth          = 20
	ArenaHeight         = 20
	MoveInterval        = 150 * time.Millisecond
	FoodRefreshInterval = 1500 * time.Millisecond
	FrameInterval       = time.Second / 60
)

var (
	StartCell    = Cell{X: 5, Y: 5}
	StartHeading = Up
)

// Config describes one arena and the cadences that drive it.
type Config struct {
	Width               int
	Height              int
	StartCell           Cell
	StartHeading        Direction
	MoveInterval        time.Duration
	FoodRefreshInterval time.Duration
	FrameInterval       time.Duration
}

func DefaultConfig() Config {
	return Config{
		Width:               ArenaWidth,
		Height:              ArenaHeight,
		StartCell:           StartCell,
		StartHeading:        StartHeading,
		MoveInterval:        MoveInterval,
		FoodRefreshInterval: FoodRefreshInterval,
		FrameInterval:       FrameInterval,
	}
}
