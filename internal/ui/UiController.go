package ui

import (
	"math/rand"
	"time"

	"github.com/Mshel/sshnake/internal/autopilot"
	"github.com/Mshel/sshnake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	GameScreen
)

// IntroSubmitMsg carries the intro choice: 0 for Play, 1 for Autopilot.
type IntroSubmitMsg int

// Options configures one player's program.
type Options struct {
	Config game.Config
	// Seed for food placement; 0 picks one from the clock.
	Seed int64
	// Script is the autopilot's Lua source; empty uses the embedded default.
	Script    string
	Autopilot bool
	SkipIntro bool

	Session  string
	Listener game.RoundListener
	Counter  RoundCounter
	Logger   *log.Logger

	ScreenWidth  int
	ScreenHeight int
}

type ControllerModel struct {
	CurrentScreen Screen

	IntroModel tea.Model
	GameModel  tea.Model

	round   *game.Round
	pilot   *autopilot.Pilot
	options Options
	quitKey key.Binding
}

func NewControllerModel(options Options) ControllerModel {
	if options.Logger == nil {
		options.Logger = log.Default()
	}
	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	roundOptions := []game.RoundOption{game.WithLogger(options.Logger)}
	if options.Listener != nil {
		roundOptions = append(roundOptions, game.WithListener(options.Listener))
	}
	round := game.NewRound(options.Config, rand.New(rand.NewSource(seed)), roundOptions...)

	script := options.Script
	if script == "" {
		script = autopilot.DefaultScript
	}
	pilot, err := autopilot.New(round, script)
	if err != nil {
		options.Logger.Error("Autopilot disabled", "error", err)
	}

	m := ControllerModel{
		CurrentScreen: IntroScreen,
		IntroModel:    NewIntroModel(options.ScreenWidth, options.ScreenHeight),
		round:         round,
		pilot:         pilot,
		options:       options,
		quitKey:       DefaultKeyMap().Quit,
	}
	if options.SkipIntro {
		m.CurrentScreen = GameScreen
		m.GameModel = m.newGameModel(options.Autopilot)
	}
	return m
}

func (m ControllerModel) newGameModel(withAutopilot bool) GameModel {
	var pilot game.InputSource
	if m.pilot != nil {
		pilot = m.pilot
	}
	return NewGameModel(m.round, pilot, withAutopilot, m.options.Session, m.options.Counter,
		m.options.Logger, m.options.ScreenWidth, m.options.ScreenHeight)
}

// Close releases the autopilot's Lua state.
func (m ControllerModel) Close() {
	if m.pilot != nil {
		m.pilot.Close()
	}
}

func (m ControllerModel) Init() tea.Cmd {
	if m.CurrentScreen == GameScreen && m.GameModel != nil {
		return m.GameModel.Init()
	}
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.quitKey) {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.options.ScreenWidth = msg.Width
		m.options.ScreenHeight = msg.Height

	case IntroSubmitMsg:
		m.CurrentScreen = GameScreen
		m.GameModel = m.newGameModel(msg == 1)
		m.options.Logger.Info("Round started", "autopilot", msg == 1)
		return m, m.GameModel.Init()
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	}

	return m, cmd
}
