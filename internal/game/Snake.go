package game

import (
	"github.com/charmbracelet/log"
)

// Snake owns its segments, head first, and its heading.
type Snake struct {
	segments []Cell
	heading  Direction
	// committed is true once the current heading has been applied by at
	// least one Advance. Heading changes are only accepted while it is set.
	committed bool

	vacated    Cell
	hasVacated bool

	logger *log.Logger
}

// NewSnake spawns a one-segment snake. It starts uncommitted, so input that
// arrives before the first movement is dropped.
func NewSnake(start Cell, heading Direction) *Snake {
	return &Snake{
		segments:  []Cell{start},
		heading:   heading,
		committed: false,
		logger:    log.Default(),
	}
}

// SetHeading changes the heading unless the snake has not moved since the
// last change, or the request repeats or reverses the current heading.
// Rejected requests are dropped. It reports whether the request was applied.
func (s *Snake) SetHeading(requested Direction) bool {
	if !s.committed || requested == s.heading || requested == s.heading.Opposite() {
		return false
	}
	s.heading = requested
	s.committed = false
	return true
}

// Advance moves the snake one cell along its heading and returns the new
// head. Movement is unconditional; the caller decides what a collision means.
func (s *Snake) Advance() Cell {
	newHead := s.segments[0].Offset(s.heading)
	s.committed = true

	s.vacated = s.segments[len(s.segments)-1]
	s.hasVacated = true

	copy(s.segments[1:], s.segments[:len(s.segments)-1])
	s.segments[0] = newHead

	return newHead
}

// Grow appends a tail segment on the cell vacated by the last Advance.
func (s *Snake) Grow() {
	if !s.hasVacated {
		contractViolation(s.logger, "grow without a preceding advance", "length", len(s.segments))
		return
	}
	s.segments = append(s.segments, s.vacated)
	s.hasVacated = false
}

// Segments returns a copy of the occupied cells, head first.
func (s *Snake) Segments() []Cell {
	segments := make([]Cell, len(s.segments))
	copy(segments, s.segments)
	return segments
}

// Body returns every segment except the head.
func (s *Snake) Body() CellSet {
	return NewCellSet(s.segments[1:]...)
}

// Occupied returns every segment including the head.
func (s *Snake) Occupied() CellSet {
	return NewCellSet(s.segments...)
}

func (s *Snake) Head() Cell {
	return s.segments[0]
}

func (s *Snake) Heading() Direction {
	return s.heading
}

func (s *Snake) Committed() bool {
	return s.committed
}

func (s *Snake) Len() int {
	return len(s.segments)
}
