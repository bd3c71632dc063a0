package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// newTestSnake builds a committed snake from explicit segments, head first.
func newTestSnake(heading Direction, segments ...Cell) *Snake {
	return &Snake{
		segments:  append([]Cell(nil), segments...),
		heading:   heading,
		committed: true,
		logger:    log.Default(),
	}
}

func newTestRound(opts ...RoundOption) *Round {
	return NewRound(DefaultConfig(), newTestRNG(), opts...)
}

// scriptedInput yields one queued direction per poll, then nothing.
type scriptedInput struct {
	dirs []Direction
}

func (s *scriptedInput) PollDirection() (Direction, bool) {
	if len(s.dirs) == 0 {
		return Up, false
	}
	dir := s.dirs[0]
	s.dirs = s.dirs[1:]
	return dir, true
}

func equalCells(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var testFrame = 150 * time.Millisecond
