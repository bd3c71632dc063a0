package game

import "testing"

func TestAdvanceFromStart(t *testing.T) {
	snake := NewSnake(Cell{X: 5, Y: 5}, Up)

	head := snake.Advance()
	if head != (Cell{X: 5, Y: 6}) {
		t.Fatalf("expected head (5,6), got %v", head)
	}
	if snake.Len() != 1 {
		t.Fatalf("expected length 1, got %d", snake.Len())
	}
	if !snake.Committed() {
		t.Fatal("expected advance to commit the heading")
	}
}

func TestAdvanceShiftsSegments(t *testing.T) {
	for length := 1; length <= 6; length++ {
		segments := make([]Cell, length)
		for i := range segments {
			segments[i] = Cell{X: 10, Y: 10 - i}
		}
		snake := newTestSnake(Right, segments...)

		before := snake.Segments()
		head := snake.Advance()
		after := snake.Segments()

		if len(after) != len(before) {
			t.Fatalf("length %d: expected unchanged length, got %d", length, len(after))
		}
		if head != before[0].Offset(Right) || after[0] != head {
			t.Fatalf("length %d: head moved to %v, want %v", length, after[0], before[0].Offset(Right))
		}
		for i := 1; i < len(after); i++ {
			if after[i] != before[i-1] {
				t.Fatalf("length %d: segment %d at %v, want %v", length, i, after[i], before[i-1])
			}
		}
	}
}

func TestGrowAppendsVacatedTail(t *testing.T) {
	snake := newTestSnake(Up, Cell{X: 5, Y: 6}, Cell{X: 5, Y: 5}, Cell{X: 5, Y: 4})

	snake.Advance()
	snake.Grow()

	want := []Cell{{X: 5, Y: 7}, {X: 5, Y: 6}, {X: 5, Y: 5}, {X: 5, Y: 4}}
	if got := snake.Segments(); !equalCells(got, want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
}

func TestSetHeadingGuards(t *testing.T) {
	t.Run("uncommitted spawn drops input", func(t *testing.T) {
		snake := NewSnake(Cell{X: 5, Y: 5}, Up)
		if snake.SetHeading(Left) {
			t.Fatal("expected heading change before the first move to be dropped")
		}
		if snake.Heading() != Up {
			t.Fatalf("heading = %v, want up", snake.Heading())
		}
	})

	t.Run("reversal is dropped", func(t *testing.T) {
		snake := newTestSnake(Up, Cell{X: 5, Y: 5})
		if snake.SetHeading(Down) {
			t.Fatal("expected reversal to be dropped")
		}
		if snake.Heading() != Up {
			t.Fatalf("heading = %v, want up", snake.Heading())
		}
	})

	t.Run("same heading is dropped", func(t *testing.T) {
		snake := newTestSnake(Up, Cell{X: 5, Y: 5})
		if snake.SetHeading(Up) {
			t.Fatal("expected repeated heading to be dropped")
		}
		if !snake.Committed() {
			t.Fatal("a dropped request must not uncommit the heading")
		}
	})

	t.Run("second turn before a move is dropped", func(t *testing.T) {
		snake := newTestSnake(Up, Cell{X: 5, Y: 5}, Cell{X: 5, Y: 4})
		if !snake.SetHeading(Left) {
			t.Fatal("expected a perpendicular turn to be accepted")
		}
		// Left then Down before moving would fold the head back onto the body.
		if snake.SetHeading(Down) {
			t.Fatal("expected turn before the previous one was consumed to be dropped")
		}
		if snake.Heading() != Left {
			t.Fatalf("heading = %v, want left", snake.Heading())
		}

		snake.Advance()
		if !snake.SetHeading(Down) {
			t.Fatal("expected turn after a move to be accepted")
		}
	})
}

func TestSegmentsIsACopy(t *testing.T) {
	snake := newTestSnake(Up, Cell{X: 5, Y: 5})
	segments := snake.Segments()
	segments[0] = Cell{X: 0, Y: 0}

	if snake.Head() != (Cell{X: 5, Y: 5}) {
		t.Fatal("mutating a snapshot changed the snake")
	}
}

func TestBodyExcludesHead(t *testing.T) {
	snake := newTestSnake(Up, Cell{X: 5, Y: 5}, Cell{X: 5, Y: 4})
	body := snake.Body()

	if body.Contains(Cell{X: 5, Y: 5}) || !body.Contains(Cell{X: 5, Y: 4}) || len(body) != 1 {
		t.Fatalf("unexpected body %v", body)
	}
}
