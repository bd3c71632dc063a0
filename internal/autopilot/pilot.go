// Package autopilot steers a snake from a Lua script.
//
// A script defines a global getNextDirection(state) returning "up", "down",
// "left", "right" or nil. The state table carries head {x, y}, food {x, y}
// or nil, heading, length, width and height. The global isFree(x, y) reports
// whether a cell is inside the arena and off the snake's body.
package autopilot

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

//go:embed greedy.lua
var DefaultScript string

const strategyFunction = "getNextDirection"

var ErrStrategyNotFound = errors.New("autopilot: script does not define " + strategyFunction)

// SnapshotSource exposes the round the pilot is steering.
type SnapshotSource interface {
	Snapshot() game.Snapshot
}

// Pilot asks its script for a heading once per movement tick.
type Pilot struct {
	source   SnapshotSource
	luaState *lua.LState
	strategy *lua.LFunction

	current  game.Snapshot
	blocked  game.CellSet
	decided  bool
	lastTick [2]int
}

// New compiles script and binds it to source.
func New(source SnapshotSource, script string) (*Pilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(script); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy definition: %w", err)
	}

	strategy, ok := luaState.GetGlobal(strategyFunction).(*lua.LFunction)
	if !ok {
		luaState.Close()
		return nil, ErrStrategyNotFound
	}

	p := &Pilot{
		source:   source,
		luaState: luaState,
		strategy: strategy,
	}
	luaState.SetGlobal("isFree", luaState.NewFunction(p.luaIsFree))
	return p, nil
}

// LoadScript reads the script at path, or returns DefaultScript when path is
// empty.
func LoadScript(path string) (string, error) {
	if path == "" {
		return DefaultScript, nil
	}
	script, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read autopilot script %s: %w", path, err)
	}
	return string(script), nil
}

func NewFromFile(source SnapshotSource, path string) (*Pilot, error) {
	script, err := LoadScript(path)
	if err != nil {
		return nil, err
	}
	return New(source, script)
}

func (p *Pilot) Close() {
	p.luaState.Close()
}

// PollDirection implements game.InputSource. Script errors are logged and
// treated as no input.
func (p *Pilot) PollDirection() (game.Direction, bool) {
	snap := p.source.Snapshot()
	tick := [2]int{snap.Round, snap.Ticks}
	if p.decided && tick == p.lastTick {
		return game.Up, false
	}
	p.decided = true
	p.lastTick = tick

	dir, ok, err := p.NextDirection(snap)
	if err != nil {
		log.Warn("Autopilot strategy failed", "error", err)
		return game.Up, false
	}
	return dir, ok
}

// NextDirection runs the script against snap.
func (p *Pilot) NextDirection(snap game.Snapshot) (game.Direction, bool, error) {
	if len(snap.Segments) == 0 {
		return game.Up, false, nil
	}

	p.current = snap
	// The tail leaves its cell as the head moves.
	p.blocked = game.NewCellSet(snap.Segments[:len(snap.Segments)-1]...)

	err := p.luaState.CallByParam(lua.P{
		Fn:      p.strategy,
		NRet:    1,
		Protect: true,
	}, p.stateTable(snap))
	if err != nil {
		return game.Up, false, fmt.Errorf("could not execute lua strategy definition: %w", err)
	}

	ret := p.luaState.Get(-1)
	p.luaState.Pop(1)

	if ret == lua.LNil {
		return game.Up, false, nil
	}
	name, ok := ret.(lua.LString)
	if !ok {
		return game.Up, false, fmt.Errorf("lua return value was type %s, expected string", ret.Type())
	}
	dir, ok := game.ParseDirection(string(name))
	if !ok {
		return game.Up, false, fmt.Errorf("unknown direction %q", string(name))
	}
	return dir, true, nil
}

func (p *Pilot) stateTable(snap game.Snapshot) *lua.LTable {
	state := p.luaState.NewTable()
	state.RawSetString("head", p.cellTable(snap.Segments[0]))
	if snap.HasFood {
		state.RawSetString("food", p.cellTable(snap.Food))
	}
	state.RawSetString("heading", lua.LString(snap.Heading.String()))
	state.RawSetString("length", lua.LNumber(len(snap.Segments)))
	state.RawSetString("width", lua.LNumber(snap.Width))
	state.RawSetString("height", lua.LNumber(snap.Height))
	return state
}

func (p *Pilot) cellTable(cell game.Cell) *lua.LTable {
	tbl := p.luaState.NewTable()
	tbl.RawSetString("x", lua.LNumber(cell.X))
	tbl.RawSetString("y", lua.LNumber(cell.Y))
	return tbl
}

func (p *Pilot) luaIsFree(luaState *lua.LState) int {
	cell := game.Cell{X: luaState.CheckInt(1), Y: luaState.CheckInt(2)}
	gameMap := game.NewGameMap(p.current.Width, p.current.Height)
	luaState.Push(lua.LBool(gameMap.IsWithinBounds(cell) && !p.blocked.Contains(cell)))
	return 1
}
