package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

type RoundState int

const (
	StatePlaying RoundState = iota
	StateGameOver
)

func (s RoundState) String() string {
	if s == StateGameOver {
		return "game over"
	}
	return "playing"
}

// RoundOutcome describes how a round ended.
type RoundOutcome struct {
	Round       int
	Cause       Collision
	Ticks       int
	FinalLength int
}

// RoundListener is notified synchronously, from inside the tick, whenever a
// round ends. During the call the round still shows the finished snake in
// StateGameOver; the respawn follows. Implementations must not block.
type RoundListener interface {
	RoundOver(outcome RoundOutcome)
}

type RoundListenerFunc func(outcome RoundOutcome)

func (f RoundListenerFunc) RoundOver(outcome RoundOutcome) {
	f(outcome)
}

// Snapshot is a read-only copy of a round for renderers.
type Snapshot struct {
	Segments       []Cell
	Food           Cell
	HasFood        bool
	Width          int
	Height         int
	Heading        Direction
	State          RoundState
	Round          int
	Ticks          int
	LastOutcome    RoundOutcome
	HasLastOutcome bool
}

// Round runs the simulation: input latching, movement, collision, eating,
// growth, food refresh and reset. It is not safe for concurrent use; every
// call must come from the goroutine that drives the frames.
type Round struct {
	config   Config
	gameMap  GameMap
	spawner  *FoodSpawner
	detector CollisionDetector

	snake   *Snake
	food    Cell
	hasFood bool

	moveTimer *Timer
	foodTimer *Timer

	growth   signal
	gameOver signal
	cause    Collision

	state          RoundState
	roundNumber    int
	ticks          int
	lastOutcome    RoundOutcome
	hasLastOutcome bool

	listener RoundListener
	logger   *log.Logger
}

type RoundOption func(*Round)

func WithLogger(logger *log.Logger) RoundOption {
	return func(r *Round) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithListener(listener RoundListener) RoundOption {
	return func(r *Round) {
		r.listener = listener
	}
}

// NewRound spawns the snake at the configured start and places the first food.
func NewRound(config Config, rng *rand.Rand, opts ...RoundOption) *Round {
	gameMap := NewGameMap(config.Width, config.Height)
	r := &Round{
		config:    config,
		gameMap:   gameMap,
		spawner:   NewFoodSpawner(gameMap, rng),
		detector:  NewCollisionDetector(gameMap),
		moveTimer: NewTimer(config.MoveInterval),
		foodTimer: NewTimer(config.FoodRefreshInterval),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.spawnSnake()
	r.placeFood()
	return r
}

// Frame runs one simulation frame. Input is latched every frame; the
// movement tick and the food refresh run when their timers fire, in that order.
func (r *Round) Frame(delta time.Duration, input InputSource) {
	if input != nil {
		if dir, ok := input.PollDirection(); ok {
			r.LatchInput(dir)
		}
	}

	if r.moveTimer.Tick(delta) {
		r.Tick()
	}

	if r.foodTimer.Tick(delta) {
		r.RefreshFood()
	}
}

// LatchInput hands a requested heading to the snake.
func (r *Round) LatchInput(dir Direction) {
	if r.snake.SetHeading(dir) {
		r.logger.Debug("heading changed", "round", r.roundNumber, "heading", dir)
	}
}

// Tick is one movement step: advance, then classify, then eat and grow.
// Eating is skipped on a fatal move, and the round resets before returning.
func (r *Round) Tick() {
	newHead := r.snake.Advance()
	r.ticks++

	if cause := r.detector.Classify(newHead, r.snake.Body()); cause != CollisionNone {
		r.cause = cause
		r.gameOver.raise()
	} else if r.hasFood && r.food == newHead {
		r.hasFood = false
		r.growth.raise()
	}

	if r.growth.drain() {
		r.snake.Grow()
		r.placeFood()
	}

	if r.gameOver.drain() {
		r.endRound()
	}
}

// RefreshFood places food only when none is active.
func (r *Round) RefreshFood() {
	if r.hasFood {
		return
	}
	r.placeFood()
}

func (r *Round) placeFood() {
	cell, ok := r.spawner.PlaceFood(r.snake.Occupied())
	if !ok {
		r.logger.Debug("board full, skipping food placement", "round", r.roundNumber)
		return
	}
	r.food = cell
	r.hasFood = true
}

func (r *Round) spawnSnake() {
	r.snake = NewSnake(r.config.StartCell, r.config.StartHeading)
	r.moveTimer.Reset()
	r.snake.logger = r.logger
	r.roundNumber++
	r.ticks = 0
	r.cause = CollisionNone
	r.state = StatePlaying
}

func (r *Round) endRound() {
	r.state = StateGameOver
	outcome := RoundOutcome{
		Round:       r.roundNumber,
		Cause:       r.cause,
		Ticks:       r.ticks,
		FinalLength: r.snake.Len(),
	}
	r.lastOutcome = outcome
	r.hasLastOutcome = true
	r.hasFood = false

	r.logger.Info("Game over, restarting", "round", outcome.Round, "cause", outcome.Cause,
		"ticks", outcome.Ticks, "length", outcome.FinalLength)

	if r.listener != nil {
		r.listener.RoundOver(outcome)
	}

	r.spawnSnake()
}

func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		Segments:       r.snake.Segments(),
		Food:           r.food,
		HasFood:        r.hasFood,
		Width:          r.gameMap.Width,
		Height:         r.gameMap.Height,
		Heading:        r.snake.Heading(),
		State:          r.state,
		Round:          r.roundNumber,
		Ticks:          r.ticks,
		LastOutcome:    r.lastOutcome,
		HasLastOutcome: r.hasLastOutcome,
	}
}

// Food returns the active food cell, if any.
func (r *Round) Food() (Cell, bool) {
	return r.food, r.hasFood
}

func (r *Round) Config() Config {
	return r.config
}
