// Package tui is the interactive terminal table: a bubbletea model with a
// scrolling game log, a status sidebar and an input line, plus the agent that
// lets a person play rounds through it.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
)

// PromptKind is what the input line is currently asking for
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptBet
	PromptAction
)

// Prompt describes the question in front of the player
type Prompt struct {
	Kind         PromptKind
	MinimumBet   int
	Hands        []game.HandView
	ActiveHand   int
	DealerUpCard cards.Card
	Valid        []game.Action
}

// Status is the table summary shown in the sidebar
type Status struct {
	Bankroll   int
	MinimumBet int
	MainBet    int
	SideBet    int
	GoldCoins  int
}

// LogMsg appends an entry to the game log
type LogMsg struct{ Entry string }

// StatusMsg replaces the sidebar status
type StatusMsg struct{ Status Status }

// PromptMsg replaces the current prompt
type PromptMsg struct{ Prompt Prompt }

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// ActionResult represents a line of user input
type ActionResult struct {
	Action   string
	Args     []string
	Continue bool
	Error    error
}

// TUIModel represents the Bubble Tea model for the blackjack table
type TUIModel struct {
	logger    *log.Logger
	formatter *display.Formatter
	program   *tea.Program

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	status Status
	prompt Prompt

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	mu          sync.Mutex
	capturedLog []string
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, testMode bool) *TUIModel {
	// Will be properly sized when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter to continue, 'quit' to exit"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusedBorder).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		formatter:    display.NewFormatter(display.Options{}),
		logViewport:  vp,
		actionInput:  ti,
		gameLog:      []string{},
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1, // Start with input focused
		testMode:     testMode,
		capturedLog:  []string{},
	}
}

// SetProgram routes Post through the running program so that state changes
// made from the engine goroutine are applied inside Update
func (m *TUIModel) SetProgram(p *tea.Program) {
	m.program = p
}

// Post delivers a message to the model. Without a running program, or in
// test mode, the message is applied immediately.
func (m *TUIModel) Post(msg tea.Msg) {
	if m.program != nil && !m.testMode {
		m.program.Send(msg)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(msg)
}

// apply updates table state for the messages the engine side sends
func (m *TUIModel) apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case LogMsg:
		m.AddLogEntry(msg.Entry)
	case StatusMsg:
		m.status = msg.Status
	case PromptMsg:
		m.prompt = msg.Prompt
	default:
		return false
	}
	return true
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.apply(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.sendResult(ActionResult{Action: "quit", Continue: false})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.processAction(strings.TrimSpace(m.actionInput.Value()))
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionBorder := unfocusedBorder
	if m.focusedPane == 1 {
		actionBorder = focusedBorder
	}
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(actionBorder).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(unfocusedBorder).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// On first proper sizing, jump to the latest entries
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logBorder := unfocusedBorder
	if m.focusedPane == 0 {
		logBorder = focusedBorder
	}
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(logBorder).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderLogPane renders the game log pane content
func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane creates the sidebar content
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(" Pot of Gold "))
	content.WriteString("\n\n")
	fmt.Fprintf(&content, "Bankroll: %s\n", m.formatter.FormatMoney(m.status.Bankroll))
	fmt.Fprintf(&content, "Minimum:  %s\n", m.formatter.FormatMoney(m.status.MinimumBet))

	if m.status.MainBet > 0 {
		fmt.Fprintf(&content, "\nBet:      %s\n", m.formatter.FormatMoney(m.status.MainBet))
		if m.status.SideBet > 0 {
			fmt.Fprintf(&content, "Side bet: %s\n", m.formatter.FormatMoney(m.status.SideBet))
			coins := m.status.GoldCoins
			content.WriteString(GoldStyle.Render(fmt.Sprintf("Gold: %d (pays %dx)", coins, game.PotOfGoldMultiplier(coins))))
			content.WriteString("\n")
		}
	}

	return content.String()
}

// renderActionPane renders the action input pane
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	switch m.prompt.Kind {
	case PromptBet:
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Place your bets (minimum $%d)", m.prompt.MinimumBet)))
		content.WriteString("\n")
		m.actionInput.Placeholder = "main [side], e.g. 25 10. Enter bets the minimum"
	case PromptAction:
		content.WriteString(m.renderHandInfo())
		content.WriteString("\n")
		content.WriteString(m.renderAvailableActions())
		content.WriteString("\n")
		m.actionInput.Placeholder = "Enter your action (h, s, d, p, ...)"
	default:
		content.WriteString(HandInfoStyle.Render("Waiting..."))
		content.WriteString("\n")
		m.actionInput.Placeholder = "Enter to continue, 'quit' to exit"
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

// renderHandInfo renders the active hand against the dealer's up card
func (m *TUIModel) renderHandInfo() string {
	p := m.prompt
	if p.ActiveHand < 0 || p.ActiveHand >= len(p.Hands) {
		return ""
	}

	label := "Your hand"
	if len(p.Hands) > 1 {
		label = fmt.Sprintf("Hand %d of %d", p.ActiveHand+1, len(p.Hands))
	}

	return HandInfoStyle.Render(label+": ") + m.formatter.FormatHand(p.Hands[p.ActiveHand]) +
		HandInfoStyle.Render("  Dealer: ") + m.formatter.FormatCard(p.DealerUpCard) + InfoStyle.Render(" [??]")
}

// renderAvailableActions renders the engine's valid actions with shortcuts
func (m *TUIModel) renderAvailableActions() string {
	var actions []string
	for _, a := range m.prompt.Valid {
		label := fmt.Sprintf("[%s] %s", a.Shortcut(), a)
		if a.IsFree() {
			label = GoldStyle.Render(label)
		}
		actions = append(actions, label)
	}

	if len(actions) == 0 {
		actions = append(actions, ErrorStyle.Render("[no actions available]"))
	}

	return ActionsStyle.Render("Actions: ") + strings.Join(actions, " ")
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return // Skip UI updates in test mode
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.gameLog = []string{}
	m.logViewport.SetContent("")
}

// Status returns the sidebar status
func (m *TUIModel) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// CurrentPrompt returns what the input line is asking for
func (m *TUIModel) CurrentPrompt() Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompt
}

// processAction splits a line of input into an action and its arguments
func (m *TUIModel) processAction(input string) {
	parts := strings.Fields(strings.ToLower(input))

	var action string
	var args []string
	if len(parts) > 0 {
		action = parts[0]
		args = parts[1:]
	}

	m.sendResult(ActionResult{
		Action:   action,
		Args:     args,
		Continue: true,
	})
}

// sendResult hands input to whoever is waiting. Input typed while nobody is
// waiting and a line is already queued is dropped.
func (m *TUIModel) sendResult(result ActionResult) bool {
	select {
	case m.actionResult <- result:
		return true
	default:
		m.logger.Debug("Dropping input, one already queued", "action", result.Action)
		return false
	}
}

// WaitForAction waits for user input
func (m *TUIModel) WaitForAction() (string, []string, bool, error) {
	result := <-m.actionResult
	return result.Action, result.Args, result.Continue, result.Error
}

// WaitForActionContext waits for user input or for ctx to be done
func (m *TUIModel) WaitForActionContext(ctx context.Context) (string, []string, bool, error) {
	select {
	case result := <-m.actionResult:
		return result.Action, result.Args, result.Continue, result.Error
	case <-ctx.Done():
		return "", nil, false, context.Cause(ctx)
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel is full, quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction programmatically injects an action (test mode only)
func (m *TUIModel) InjectAction(action string, args []string) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}

	if !m.sendResult(ActionResult{Action: action, Args: args, Continue: true}) {
		return fmt.Errorf("action channel full")
	}
	return nil
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
