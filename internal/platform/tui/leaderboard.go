package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/combo-jump/internal/ranking"
)

// Leaderboard layout constants
const (
	tableMinWidth  = 30
	tableMaxHeight = 20
)

// newLeaderboardTable creates the ranking table sized for the terminal.
func newLeaderboardTable(width, height int) table.Model {
	nameWidth := 16
	if w := width - 24; w > tableMinWidth {
		nameWidth = min(w-14, 24)
	}
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: nameWidth},
		{Title: "Score", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(min(height-14, tableMaxHeight), 3)),
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

// leaderboardRows converts records to table rows in rank order.
func leaderboardRows(records []ranking.Record) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Name,
			fmt.Sprintf("%d", r.Score),
		}
	}
	return rows
}

// renderTableContent renders the table or an empty message.
func renderTableContent(t table.Model, loaded bool) string {
	if !loaded {
		return ""
	}
	if len(t.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a run to set a high score!")
	}
	return t.View()
}

// LeaderboardMsg carries a fresh leaderboard, either the initial load or a
// live update.
type LeaderboardMsg struct {
	Records []ranking.Record
	Err     error
	Live    bool
}

// ScoresModel is the Bubble Tea model for the standalone ranking screen.
type ScoresModel struct {
	svc      ranking.Service
	updates  <-chan []ranking.Record // Nil without a live feed
	records  []ranking.Record
	err      error
	loading  bool
	live     bool
	table    table.Model
	help     help.Model
	keys     KeyMap
	width    int
	height   int
	quitting bool
}

// NewScoresModel creates the ranking screen. When updates is non-nil the
// screen refreshes on every value received from it.
func NewScoresModel(svc ranking.Service, updates <-chan []ranking.Record, width, height int) ScoresModel {
	h := help.New()
	h.ShowAll = false
	return ScoresModel{
		svc:     svc,
		updates: updates,
		loading: true,
		table:   newLeaderboardTable(width, height),
		help:    h,
		keys:    DefaultKeyMap(),
		width:   width,
		height:  height,
	}
}

// Init loads the leaderboard and starts listening for live updates.
func (m ScoresModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd()}
	if m.updates != nil {
		cmds = append(cmds, waitForUpdate(m.updates))
	}
	return tea.Batch(cmds...)
}

func (m ScoresModel) loadCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		records, err := svc.Leaderboard(context.Background())
		return LeaderboardMsg{Records: records, Err: err}
	}
}

// waitForUpdate blocks on the next live update.
func waitForUpdate(updates <-chan []ranking.Record) tea.Cmd {
	return func() tea.Msg {
		records, ok := <-updates
		if !ok {
			return nil
		}
		return LeaderboardMsg{Records: records, Live: true}
	}
}

// Update handles messages for the ranking screen.
func (m ScoresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.loading = true
			return m, m.loadCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = newLeaderboardTable(m.width, m.height)
		m.table.SetRows(leaderboardRows(m.records))
		m.help.Width = msg.Width
		return m, nil

	case LeaderboardMsg:
		if msg.Live {
			m.live = true
			cmd = waitForUpdate(m.updates)
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.records = msg.Records
			m.table.SetRows(leaderboardRows(m.records))
		}
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ranking screen.
func (m ScoresModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := "HIGH SCORES"
	if m.live {
		title += "  (live)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.records) == 0:
		b.WriteString(dimStyle.Render("Loading ranking..."))
	case m.err != nil:
		b.WriteString(errStyle.Render("Could not load the ranking. Check your connection."))
		if len(m.records) > 0 {
			b.WriteString("\n")
			b.WriteString(m.table.View())
		}
	default:
		b.WriteString(renderTableContent(m.table, true))
	}

	b.WriteString("\n\n")
	scoresHelp := []key.Binding{m.keys.Up, m.keys.Down, withHelp(m.keys.Start, "refresh"), m.keys.Back}
	b.WriteString(dimStyle.Render(m.help.ShortHelpView(scoresHelp)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panelStyle.Render(b.String()))
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

// RunScores runs the ranking screen until the user leaves it.
func RunScores(svc ranking.Service, updates <-chan []ranking.Record, width, height int) error {
	p := tea.NewProgram(
		NewScoresModel(svc, updates, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
