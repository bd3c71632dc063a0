package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type introChoice struct {
	label   string
	summary string
}

var introChoices = []introChoice{
	{label: "Play", summary: "Steer with the arrow keys or wasd."},
	{label: "Watch Autopilot", summary: "A Lua script steers; press p to take over."},
}

// IntroModel is the start menu. Its index in introChoices is what
// IntroSubmitMsg carries.
type IntroModel struct {
	cursor int
	keys   KeyMap
	width  int
	height int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{keys: DefaultKeyMap(), width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor + len(introChoices) - 1) % len(introChoices)
		case key.Matches(msg, m.keys.Right), msg.Type == tea.KeyTab:
			m.cursor = (m.cursor + 1) % len(introChoices)
		case msg.Type == tea.KeyEnter:
			choice := IntroSubmitMsg(m.cursor)
			return m, func() tea.Msg { return choice }
		}
	}
	return m, nil
}

const titleArt = `
 ▄▄▄▄  ▄▄▄▄  ▄   ▄  ▄▄  ▄   ▄▄   ▄  ▄ ▄▄▄▄
 █▄▄▄  █▄▄▄  █▄▄▄█  █ █ █  █▄▄█  █▄▀  █▄▄
 ▄▄▄█  ▄▄▄█  █   █  █  ▀█  █  █  █ ▀▄ █▄▄▄
`

var (
	titleArtStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).MarginBottom(1)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 3).
			Margin(0, 2)

	activeChoiceStyle = choiceStyle.
				Background(lipgloss.Color("201")).
				Foreground(lipgloss.Color("0"))

	summaryStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")).MarginTop(1)
)

func (m IntroModel) View() string {
	buttons := make([]string, len(introChoices))
	for i, choice := range introChoices {
		style := choiceStyle
		if i == m.cursor {
			style = activeChoiceStyle
		}
		buttons[i] = style.Render(choice.label)
	}

	menu := lipgloss.JoinVertical(lipgloss.Center,
		titleArtStyle.Render(titleArt),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		summaryStyle.Render(introChoices[m.cursor].summary),
		faintStyle.Render("←/→ to choose, enter to start, q to quit"),
	)

	if m.width == 0 || m.height == 0 {
		return menu
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, menu)
}
