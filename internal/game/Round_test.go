package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewRoundStartsPlaying(t *testing.T) {
	r := newTestRound()
	snap := r.Snapshot()

	if !equalCells(snap.Segments, []Cell{{X: 5, Y: 5}}) {
		t.Fatalf("segments = %v, want [(5,5)]", snap.Segments)
	}
	if snap.Heading != Up || snap.State != StatePlaying || snap.Round != 1 {
		t.Fatalf("unexpected start snapshot %+v", snap)
	}
	if !snap.HasFood || snap.Food == (Cell{X: 5, Y: 5}) {
		t.Fatalf("expected initial food off the snake, got %v %v", snap.Food, snap.HasFood)
	}
	if snap.Width != 20 || snap.Height != 20 {
		t.Fatalf("unexpected arena %dx%d", snap.Width, snap.Height)
	}
}

func TestTickMovesUp(t *testing.T) {
	r := newTestRound()
	r.food, r.hasFood = Cell{X: 0, Y: 0}, true

	r.Tick()

	snap := r.Snapshot()
	if !equalCells(snap.Segments, []Cell{{X: 5, Y: 6}}) {
		t.Fatalf("segments = %v, want [(5,6)]", snap.Segments)
	}
	if snap.Ticks != 1 {
		t.Fatalf("ticks = %d, want 1", snap.Ticks)
	}
}

func TestOutOfBoundsResetsRound(t *testing.T) {
	var outcomes []RoundOutcome
	r := newTestRound(WithListener(RoundListenerFunc(func(o RoundOutcome) {
		outcomes = append(outcomes, o)
	})))
	r.snake = newTestSnake(Right, Cell{X: 19, Y: 5})

	r.Tick()

	snap := r.Snapshot()
	if !equalCells(snap.Segments, []Cell{{X: 5, Y: 5}}) {
		t.Fatalf("segments = %v, want fresh snake at (5,5)", snap.Segments)
	}
	if snap.Heading != Up {
		t.Fatalf("heading = %v, want up", snap.Heading)
	}
	if snap.HasFood {
		t.Fatal("expected food to be cleared on game over")
	}
	if snap.State != StatePlaying || snap.Round != 2 || snap.Ticks != 0 {
		t.Fatalf("unexpected snapshot after reset %+v", snap)
	}
	if r.snake.Committed() {
		t.Fatal("respawned snake must start uncommitted")
	}

	if len(outcomes) != 1 {
		t.Fatalf("expected one outcome, got %d", len(outcomes))
	}
	if outcomes[0].Cause != CollisionOutOfBounds || outcomes[0].Round != 1 {
		t.Fatalf("unexpected outcome %+v", outcomes[0])
	}
	if !snap.HasLastOutcome || snap.LastOutcome != outcomes[0] {
		t.Fatalf("snapshot outcome %+v, want %+v", snap.LastOutcome, outcomes[0])
	}
}

func TestListenerReadsRoundDuringReset(t *testing.T) {
	var seen Snapshot
	var r *Round
	r = newTestRound(WithListener(RoundListenerFunc(func(RoundOutcome) {
		seen = r.Snapshot()
	})))
	r.snake = newTestSnake(Right, Cell{X: 19, Y: 5}, Cell{X: 18, Y: 5})

	r.Tick()

	if seen.State != StateGameOver || seen.Round != 1 {
		t.Fatalf("listener saw %+v, want the finished round in game over", seen)
	}
	if !equalCells(seen.Segments, []Cell{{X: 20, Y: 5}, {X: 19, Y: 5}}) {
		t.Fatalf("listener saw segments %v, want the final snake", seen.Segments)
	}
	if seen.HasFood {
		t.Fatal("food should already be cleared when the listener runs")
	}
	if snap := r.Snapshot(); snap.State != StatePlaying || snap.Round != 2 {
		t.Fatalf("expected a fresh round after the listener, got %+v", snap)
	}
}

func TestResetRestartsMovementCadence(t *testing.T) {
	r := newTestRound()
	r.snake = newTestSnake(Right, Cell{X: 19, Y: 5})

	r.Frame(200*time.Millisecond, nil)
	if snap := r.Snapshot(); snap.Round != 2 {
		t.Fatalf("round = %d, want 2 after hitting the wall", snap.Round)
	}

	r.Frame(100*time.Millisecond, nil)
	if r.snake.Head() != (Cell{X: 5, Y: 5}) {
		t.Fatal("surplus from the fatal frame carried into the new round")
	}

	r.Frame(50*time.Millisecond, nil)
	if r.snake.Head() != (Cell{X: 5, Y: 6}) {
		t.Fatalf("head = %v, want (5,6) one full interval after the reset", r.snake.Head())
	}
}

func TestEatingGrowsAndRespawnsFood(t *testing.T) {
	r := newTestRound()
	r.food, r.hasFood = Cell{X: 5, Y: 6}, true

	r.Tick()

	snap := r.Snapshot()
	want := []Cell{{X: 5, Y: 6}, {X: 5, Y: 5}}
	if !equalCells(snap.Segments, want) {
		t.Fatalf("segments = %v, want %v", snap.Segments, want)
	}
	if !snap.HasFood {
		t.Fatal("expected replacement food")
	}
	if NewCellSet(snap.Segments...).Contains(snap.Food) {
		t.Fatalf("replacement food %v placed on the snake", snap.Food)
	}
}

func TestSelfCollisionDiscardsEating(t *testing.T) {
	var outcomes []RoundOutcome
	r := newTestRound(WithListener(RoundListenerFunc(func(o RoundOutcome) {
		outcomes = append(outcomes, o)
	})))
	r.snake = newTestSnake(Right,
		Cell{X: 5, Y: 5}, Cell{X: 5, Y: 6}, Cell{X: 6, Y: 6}, Cell{X: 6, Y: 5}, Cell{X: 6, Y: 4})
	r.food, r.hasFood = Cell{X: 6, Y: 5}, true

	r.Tick()

	if len(outcomes) != 1 {
		t.Fatalf("expected one outcome, got %d", len(outcomes))
	}
	if outcomes[0].Cause != CollisionSelf || outcomes[0].FinalLength != 5 {
		t.Fatalf("unexpected outcome %+v", outcomes[0])
	}
	if r.snake.Len() != 1 || r.growth.raised {
		t.Fatal("growth must not carry over a reset")
	}
}

func TestMovingIntoVacatedTailIsSafe(t *testing.T) {
	r := newTestRound()
	r.food, r.hasFood = Cell{X: 0, Y: 0}, true
	r.snake = newTestSnake(Left,
		Cell{X: 6, Y: 6}, Cell{X: 7, Y: 6}, Cell{X: 7, Y: 5}, Cell{X: 6, Y: 5}, Cell{X: 5, Y: 5}, Cell{X: 5, Y: 6})

	r.Tick()

	if r.Snapshot().Round != 1 {
		t.Fatal("moving onto the cell the tail just left must not end the round")
	}
}

func TestRefreshFoodIsIdempotent(t *testing.T) {
	r := newTestRound()
	food, ok := r.Food()
	if !ok {
		t.Fatal("expected initial food")
	}

	for i := 0; i < 10; i++ {
		r.RefreshFood()
	}

	if got, _ := r.Food(); got != food {
		t.Fatalf("refresh moved active food from %v to %v", food, got)
	}
}

func TestRefreshFoodAfterReset(t *testing.T) {
	r := newTestRound()
	r.snake = newTestSnake(Right, Cell{X: 19, Y: 5})
	r.Tick()

	if _, ok := r.Food(); ok {
		t.Fatal("expected no food right after reset")
	}

	r.RefreshFood()
	food, ok := r.Food()
	if !ok || food == (Cell{X: 5, Y: 5}) {
		t.Fatalf("expected refreshed food off the snake, got %v %v", food, ok)
	}
}

func TestFrameLatchesInputBeforeMovement(t *testing.T) {
	r := newTestRound()
	r.food, r.hasFood = Cell{X: 0, Y: 0}, true

	// Freshly spawned snakes are uncommitted, so this turn is dropped.
	r.Frame(testFrame, &scriptedInput{dirs: []Direction{Right}})
	if head := r.snake.Head(); head != (Cell{X: 5, Y: 6}) {
		t.Fatalf("head = %v, want (5,6)", head)
	}

	r.Frame(testFrame, &scriptedInput{dirs: []Direction{Right}})
	if head := r.snake.Head(); head != (Cell{X: 6, Y: 6}) {
		t.Fatalf("head = %v, want (6,6)", head)
	}
}

func TestFrameReversalIsDropped(t *testing.T) {
	r := newTestRound()
	r.food, r.hasFood = Cell{X: 0, Y: 0}, true
	r.Frame(testFrame, nil)

	r.Frame(10*time.Millisecond, &scriptedInput{dirs: []Direction{Down}})
	if r.snake.Heading() != Up {
		t.Fatalf("heading = %v, want up", r.snake.Heading())
	}
}

func TestFrameCadence(t *testing.T) {
	r := newTestRound()
	r.food, r.hasFood = Cell{X: 0, Y: 0}, true

	for i := 0; i < 14; i++ {
		r.Frame(10*time.Millisecond, nil)
	}
	if r.snake.Head() != (Cell{X: 5, Y: 5}) {
		t.Fatal("snake moved before the movement interval elapsed")
	}

	r.Frame(10*time.Millisecond, nil)
	if r.snake.Head() != (Cell{X: 5, Y: 6}) {
		t.Fatalf("head = %v, want (5,6) after 150ms", r.snake.Head())
	}
}

func TestFrameRefreshesMissingFood(t *testing.T) {
	config := DefaultConfig()
	config.MoveInterval = time.Hour
	r := NewRound(config, newTestRNG())
	r.hasFood = false

	r.Frame(1400*time.Millisecond, nil)
	if _, ok := r.Food(); ok {
		t.Fatal("food refreshed before its interval")
	}

	r.Frame(100*time.Millisecond, nil)
	if _, ok := r.Food(); !ok {
		t.Fatal("expected food after 1500ms")
	}
}

func TestBoardFullSkipsFood(t *testing.T) {
	config := DefaultConfig()
	config.Width, config.Height = 2, 1
	config.StartCell, config.StartHeading = Cell{X: 0, Y: 0}, Right
	r := NewRound(config, newTestRNG())

	food, ok := r.Food()
	if !ok || food != (Cell{X: 1, Y: 0}) {
		t.Fatalf("expected food on the only free cell, got %v %v", food, ok)
	}

	r.Tick()
	if r.snake.Len() != 2 {
		t.Fatalf("expected snake to fill the board, length %d", r.snake.Len())
	}
	if _, ok := r.Food(); ok {
		t.Fatal("expected no food on a full board")
	}

	r.RefreshFood()
	if _, ok := r.Food(); ok {
		t.Fatal("expected refresh to skip on a full board")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := newTestRound()
	snap := r.Snapshot()
	snap.Segments[0] = Cell{X: 0, Y: 0}

	if r.snake.Head() != (Cell{X: 5, Y: 5}) {
		t.Fatal("mutating a snapshot changed the round")
	}
}

func TestLoopRunsUntilCancelled(t *testing.T) {
	config := DefaultConfig()
	config.MoveInterval = time.Millisecond
	r := NewRound(config, newTestRNG())

	loop := NewLoop(r, nil, time.Millisecond)
	frames := 0
	loop.OnFrame(func(Snapshot) { frames++ })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if frames == 0 {
		t.Fatal("expected at least one frame")
	}
}
