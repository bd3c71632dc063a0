package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	headStyle    = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("252")).Bold(true)
	segmentStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("244"))
	foodStyle    = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("201"))
	voidStyle    = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render("  ")
	titleStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)

	// Up is +y in the simulation and the top row on screen.
	headRunes = map[game.Direction]string{
		game.Up:    "▲ ",
		game.Down:  "▼ ",
		game.Left:  "◀ ",
		game.Right: "▶ ",
	}
)

const (
	segmentRune    = "██"
	foodRune       = "● "
	statusMinWidth = 28
	countDelay     = 200 * time.Millisecond
	countTimeout   = time.Second
)

type frameMsg time.Time

type roundsPlayedMsg struct {
	count int
	err   error
}

// RoundCounter reports how many rounds a session has finished.
type RoundCounter interface {
	RoundsPlayed(ctx context.Context, session string) (int, error)
}

// GameModel drives one Round from bubbletea frame ticks. The round only ever
// runs inside Update, so it needs no locking.
type GameModel struct {
	round    *game.Round
	keyLatch *KeyLatch
	pilot    game.InputSource
	keys     KeyMap
	help     help.Model

	autopilot     bool
	frameInterval time.Duration
	lastFrame     time.Time
	snapshot      game.Snapshot

	session      string
	counter      RoundCounter
	roundsPlayed int
	logger       *log.Logger

	ScreenWidth  int
	ScreenHeight int
}

func NewGameModel(round *game.Round, pilot game.InputSource, autopilot bool, session string,
	counter RoundCounter, logger *log.Logger, screenWidth int, screenHeight int) GameModel {
	if logger == nil {
		logger = log.Default()
	}
	return GameModel{
		round:         round,
		keyLatch:      &KeyLatch{},
		pilot:         pilot,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		autopilot:     autopilot && pilot != nil,
		frameInterval: round.Config().FrameInterval,
		snapshot:      round.Snapshot(),
		session:       session,
		counter:       counter,
		logger:        logger,
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
	}
}

func (m GameModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Autopilot):
			if m.pilot != nil {
				m.autopilot = !m.autopilot
				m.logger.Info("Autopilot toggled", "enabled", m.autopilot)
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if dir, ok := m.keys.Direction(msg); ok && !m.autopilot {
			m.keyLatch.Press(dir)
		}
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		delta := m.frameInterval
		if !m.lastFrame.IsZero() {
			delta = now.Sub(m.lastFrame)
		}
		m.lastFrame = now

		previousRound := m.snapshot.Round
		m.round.Frame(delta, m.input())
		m.snapshot = m.round.Snapshot()

		cmds := []tea.Cmd{m.nextFrame()}
		if m.snapshot.Round != previousRound {
			cmds = append(cmds, m.countRounds())
		}
		return m, tea.Batch(cmds...)

	case roundsPlayedMsg:
		if msg.err != nil {
			m.logger.Warn("Could not count journaled rounds", "error", msg.err)
			return m, nil
		}
		m.roundsPlayed = msg.count
		return m, nil
	}

	return m, nil
}

func (m GameModel) input() game.InputSource {
	if m.autopilot {
		return m.pilot
	}
	return m.keyLatch
}

func (m GameModel) nextFrame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// countRounds queries the journal shortly after a reset so the recorder's
// workers have had a chance to write the outcome.
func (m GameModel) countRounds() tea.Cmd {
	if m.counter == nil {
		return nil
	}
	counter, session := m.counter, m.session
	return tea.Tick(countDelay, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), countTimeout)
		defer cancel()
		count, err := counter.RoundsPlayed(ctx, session)
		return roundsPlayedMsg{count: count, err: err}
	})
}

func (m GameModel) View() string {
	board := mapViewStyle.Render(RenderBoard(m.snapshot))
	statusWidth := max(statusMinWidth, m.ScreenWidth-lipgloss.Width(board)-4)
	status := statusPanelStyle.Width(statusWidth).Render(m.renderStatusPanel())

	content := lipgloss.JoinHorizontal(lipgloss.Top, board, status)
	if m.ScreenWidth == 0 || m.ScreenHeight == 0 {
		return content
	}
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

// RenderBoard draws a snapshot two columns per cell, highest row first.
func RenderBoard(snap game.Snapshot) string {
	occupied := make(map[game.Cell]int, len(snap.Segments))
	for i, cell := range snap.Segments {
		occupied[cell] = i
	}

	var sb strings.Builder
	for y := snap.Height - 1; y >= 0; y-- {
		for x := 0; x < snap.Width; x++ {
			cell := game.Cell{X: x, Y: y}
			index, onSnake := occupied[cell]
			switch {
			case onSnake && index == 0:
				sb.WriteString(headStyle.Render(headRunes[snap.Heading]))
			case onSnake:
				sb.WriteString(segmentStyle.Render(segmentRune))
			case snap.HasFood && cell == snap.Food:
				sb.WriteString(foodStyle.Render(foodRune))
			default:
				sb.WriteString(voidStyle)
			}
		}
		if y > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m GameModel) renderStatusPanel() string {
	var statusContent strings.Builder

	mode := "manual"
	if m.autopilot {
		mode = "autopilot"
	}

	statusContent.WriteString(titleStyle.Render("--- Round ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Round: %d\n", m.snapshot.Round))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(m.snapshot.Segments)))
	statusContent.WriteString(fmt.Sprintf("Ticks: %d\n", m.snapshot.Ticks))
	statusContent.WriteString(fmt.Sprintf("Heading: %s\n", strings.TrimSpace(headRunes[m.snapshot.Heading])))
	statusContent.WriteString(fmt.Sprintf("Mode: %s\n", mode))

	if m.snapshot.HasLastOutcome {
		last := m.snapshot.LastOutcome
		statusContent.WriteString("\n" + titleStyle.Render("--- Last round ---") + "\n")
		statusContent.WriteString(fmt.Sprintf("Ended by: %s\n", last.Cause))
		statusContent.WriteString(fmt.Sprintf("Survived: %d ticks\n", last.Ticks))
		statusContent.WriteString(fmt.Sprintf("Length: %d\n", last.FinalLength))
	}

	if m.counter != nil {
		statusContent.WriteString(fmt.Sprintf("\nRounds journaled: %d\n", m.roundsPlayed))
	}

	statusContent.WriteString("\n" + m.help.View(m.keys) + "\n")
	if m.pilot == nil {
		statusContent.WriteString(faintStyle.Render("autopilot unavailable") + "\n")
	}

	return statusContent.String()
}
