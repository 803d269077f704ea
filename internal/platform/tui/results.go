package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kobra/internal/core"
	"github.com/vovakirdan/kobra/internal/registry"
	"github.com/vovakirdan/kobra/internal/storage"
)

// Results board layout constants
const (
	maxResults   = 100 // Max matches to load
	tableMargins = 8   // Header, tabs, stats and help
)

// ResultsKeyMap defines the key bindings for the results board.
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the match history screen.
type ResultsModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	player     string // Empty shows every player
	matches    []storage.MatchRecord
	stats      *storage.MatchStats
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ResultsKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewResultsModel creates a results board. When player is set only that
// player's matches are listed.
func NewResultsModel(store *storage.Store, player string, width, height int) ResultsModel {
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		games:  registry.List(),
		store:  store,
		player: player,
		keys:   DefaultResultsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current window.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Result", Width: 7},
		{Title: "Reason", Width: 20},
		{Title: "You", Width: 4},
		{Title: "AI", Width: 4},
		{Title: "Moves", Width: 6},
	}
	if m.player == "" {
		columns = append(columns, table.Column{Title: "Player", Width: 10})
	}

	height := m.height - tableMargins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ResultsModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// load fetches matches and stats for the selected game.
func (m *ResultsModel) load() {
	m.matches, m.stats, m.loadErr = nil, nil, nil
	if m.store == nil || len(m.games) == 0 {
		m.updateTableRows()
		return
	}

	gameID := m.currentGame()
	if m.player != "" {
		m.matches, m.loadErr = m.store.PlayerMatches(gameID, m.player, maxResults)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.StatsByPlayer(gameID, m.player)
		}
	} else {
		m.matches, m.loadErr = m.store.RecentMatches(gameID, maxResults)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(gameID)
		}
	}
	m.updateTableRows()
}

// resultLabel converts a stored result to the player's point of view.
func resultLabel(result string) string {
	switch result {
	case core.ResultPlayer:
		return "Win"
	case core.ResultCPU:
		return "Loss"
	case core.ResultDraw:
		return "Draw"
	}
	return result
}

func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, rec := range m.matches {
		row := table.Row{
			rec.CreatedAt.Format("Jan 02 15:04"),
			resultLabel(rec.Result),
			rec.Reason,
			fmt.Sprintf("%d", rec.PlayerLen),
			fmt.Sprintf("%d", rec.CPULen),
			fmt.Sprintf("%d", rec.Ticks),
		}
		if m.player == "" {
			row = append(row, rec.Player)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := "MATCH HISTORY"
	if m.player != "" {
		title = fmt.Sprintf("MATCH HISTORY - %s", m.player)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ResultsModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + g.Title + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderStats renders the win/loss/draw line for the selected game.
func (m ResultsModel) renderStats() string {
	if m.loadErr != nil {
		return styleFor(core.ColorRed).Render(fmt.Sprintf(" Could not load results: %v", m.loadErr))
	}
	if m.stats == nil || m.stats.Games == 0 {
		return ""
	}
	s := m.stats
	return fmt.Sprintf(" %s  %s  %s   Best length %d   Win rate %.0f%%",
		styleFor(core.ColorOrange).Render(fmt.Sprintf("W %d", s.Wins)),
		styleFor(core.ColorTeal).Render(fmt.Sprintf("L %d", s.Losses)),
		styleFor(core.ColorGray).Render(fmt.Sprintf("D %d", s.Draws)),
		s.BestLength,
		s.WinRate()*100,
	)
}

// renderTableContent renders the table or an empty message.
func (m ResultsModel) renderTableContent() string {
	if len(m.matches) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No matches recorded yet.\nBeat the AI to claim the KObra title!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the results board.
// Returns true if user wants to go back to menu, false if quitting.
func RunResults(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewResultsModel(store, "", width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
