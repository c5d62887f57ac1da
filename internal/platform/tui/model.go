package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/combo-jump/internal/core"
	"github.com/vovakirdan/combo-jump/internal/ranking"
)

// Game is what the shell drives. Games contain pure logic with no Bubble Tea
// dependency; the shell handles input mapping, timing and display.
type Game interface {
	ID() string
	Title() string

	// Reset cancels any run in progress and starts a new one.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current run into a pre-sized screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// phase is the screen the model is showing.
type phase int

const (
	phaseStart phase = iota
	phasePlaying
	phaseRanking
)

// Options configures the ranking hand-off of a Model.
type Options struct {
	Player  string
	Email   string
	Ranking ranking.Service // Nil skips the hand-off
	Timeout time.Duration
	MaxName int
	Logger  *log.Logger

	// ScreenshotDir receives ctrl+s captures. Empty uses ~/.combojump/screenshots.
	ScreenshotDir string
}

// RankingMsg delivers a settled ranking hand-off for run Gen.
type RankingMsg struct {
	Gen     int
	Outcome ranking.Outcome
}

// Model is the Bubble Tea model for a Combo Jump session: a start screen,
// the run itself and the ranking screen shown after each run.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	fixedSeed  bool
	opts       Options
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	phase   phase
	gen     int // Bumped on every start so stale ticks and results are dropped
	pending bool
	outcome ranking.Outcome
	table   table.Model

	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		fixedSeed:  fixed,
		opts:       opts,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		table:      newLeaderboardTable(cfg.ScreenW, cfg.ScreenH),
	}
}

// Init shows the start screen; the first run begins on Enter.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case RankingMsg:
		return m.handleRanking(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.gen++
		return m, tea.Quit
	}

	switch m.phase {
	case phaseStart:
		if action == core.ActionStart || action == core.ActionJump {
			return m.startRun()
		}

	case phasePlaying:
		if action == core.ActionBack {
			// Abandoned runs are not submitted.
			m.gen++
			m.phase = phaseStart
			return m, nil
		}
		if action == core.ActionJump || action == core.ActionPause {
			m.inputFrame.Set(action)
		}

	case phaseRanking:
		switch {
		case action == core.ActionStart:
			return m.startRun()
		case action == core.ActionBack:
			m.phase = phaseStart
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// handleResize processes window resize events. The world is scaled onto the
// new size, so a run in progress keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	rows := m.table.Rows()
	cursor := m.table.Cursor()
	m.table = newLeaderboardTable(msg.Width, msg.Height)
	if len(rows) > 0 {
		m.table.SetRows(rows)
		m.table.SetCursor(cursor)
	}
	return m, nil
}

// startRun resets the game and schedules the first tick of a new run.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.gen++
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.phase = phasePlaying
	m.pending = false
	m.outcome = ranking.Outcome{}
	return m, tickCmd(m.config.TickRate, m.gen)
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.phase != phasePlaying {
		return m, nil
	}

	result, ok := m.safeStep()
	m.inputFrame.Clear()
	if !ok {
		return m, tickCmd(m.config.TickRate, m.gen)
	}
	m.gameState = result.State

	if result.Ended {
		m.opts.Logger.Info("run finished", "score", m.gameState.Score, "combo", m.gameState.Combo)
		m.phase = phaseRanking
		m.table.SetRows(nil)
		if m.opts.Ranking == nil {
			return m, nil
		}
		m.pending = true
		return m, m.settleCmd(m.gameState.Score)
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// safeStep runs one simulation step. A panic inside the game is logged and
// the frame is skipped so the tick loop survives.
func (m *Model) safeStep() (result core.StepResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.opts.Logger.Error("frame failed", "game", m.game.ID(), "panic", r)
			ok = false
		}
	}()
	return m.game.Step(m.inputFrame), true
}

// settleCmd hands the finished run to the ranking service off the UI loop.
func (m Model) settleCmd(score int) tea.Cmd {
	gen := m.gen
	svc := m.opts.Ranking
	timeout := m.opts.Timeout
	sub := ranking.NewSubmission(m.opts.Player, m.opts.Email, score, m.opts.MaxName)
	return func() tea.Msg {
		return RankingMsg{
			Gen:     gen,
			Outcome: ranking.Settle(context.Background(), svc, sub, timeout),
		}
	}
}

// handleRanking shows a settled hand-off if it belongs to the current run.
func (m Model) handleRanking(msg RankingMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	out := msg.Outcome
	if out.SubmitErr != nil {
		m.opts.Logger.Warn("score submission failed", "error", out.SubmitErr)
	}
	if out.FetchErr != nil {
		m.opts.Logger.Warn("ranking fetch failed", "error", out.FetchErr)
	}

	m.pending = false
	m.outcome = out
	m.table.SetRows(leaderboardRows(out.Records))
	if rank := out.Rank(); rank > 0 {
		m.table.SetCursor(rank - 1)
	} else {
		m.table.GotoTop()
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".combojump", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseStart:
		return m.startView()
	case phaseRanking:
		return m.rankingView()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

func (m Model) startView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(m.game.Title())))
	b.WriteString("\n\n")
	b.WriteString("Jump over obstacles, grab coins, beat the clock.\n")
	b.WriteString("Coins add time and grow your combo; hits cost time.\n")
	b.WriteString("Blue coins boost speed, yellow coins grant a double jump.\n\n")
	if m.opts.Player != "" {
		b.WriteString(dimStyle.Render("Playing as " + ranking.CleanName(m.opts.Player, m.opts.MaxName)))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return m.center(panelStyle.Render(b.String()))
}

func (m Model) rankingView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TIME UP"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score: %d   Combo: x%d\n\n", m.gameState.Score, m.gameState.Combo))

	switch {
	case m.opts.Ranking == nil:
		b.WriteString(dimStyle.Render("Ranking disabled."))
	case m.pending:
		b.WriteString(dimStyle.Render("Sending score and loading ranking..."))
	default:
		if rank := m.outcome.Rank(); rank > 0 {
			b.WriteString(titleStyle.Render(fmt.Sprintf("You placed #%d!", rank)))
			b.WriteString("\n\n")
		}
		b.WriteString(renderTableContent(m.table, m.outcome.Loaded()))
		for _, n := range m.outcome.Notes() {
			b.WriteString("\n")
			b.WriteString(noteStyle(n.Severity).Render(n.Text))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(rankingHelp{m.keys})))
	return m.center(panelStyle.Render(b.String()))
}

func (m Model) center(s string) string {
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, s)
}

func noteStyle(s ranking.Severity) lipgloss.Style {
	switch s {
	case ranking.SeverityWarning:
		return warnStyle
	case ranking.SeverityError:
		return errStyle
	}
	return dimStyle
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
