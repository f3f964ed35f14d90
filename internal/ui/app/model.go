package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ledgerdto "github.com/javikin/umbral-sub003/internal/modules/ledger/dto"
	sessiondto "github.com/javikin/umbral-sub003/internal/modules/session/dto"
	"github.com/javikin/umbral-sub003/internal/platform/broadcast"
	"github.com/javikin/umbral-sub003/internal/ui/components"
	"github.com/javikin/umbral-sub003/internal/ui/theme"
)

// sessionPort is the slice of the session CLI handler the dashboard drives.
type sessionPort interface {
	Start(ctx context.Context, profileID string) (sessiondto.StateOutput, error)
	Stop(ctx context.Context, method, credential string) (sessiondto.RewardEvent, error)
	Timeout(ctx context.Context) (sessiondto.RewardEvent, error)
	Attempt(ctx context.Context, packageName string) (sessiondto.StateOutput, error)
}

// Feeds are the live subscriptions the dashboard renders. The model owns
// them and closes them on quit.
type Feeds struct {
	State   *broadcast.Subscription[sessiondto.StateOutput]
	Ledger  *broadcast.Subscription[ledgerdto.LedgerOutput]
	Rewards *broadcast.Subscription[sessiondto.RewardEvent]
}

func (f Feeds) Close() {
	f.State.Close()
	f.Ledger.Close()
	f.Rewards.Close()
}

var paletteHints = []string{
	"start <profile-id>",
	"stop <nfc|qr|code|manual> [credential]",
	"timeout",
	"attempt <package>",
}

type stateMsg sessiondto.StateOutput

type ledgerMsg ledgerdto.LedgerOutput

type rewardMsg sessiondto.RewardEvent

type tickMsg time.Time

type actionMsg struct {
	status string
	err    error
}

type keyMap struct {
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Palette}, {k.Help, k.Quit}}
}

// Model is the live dashboard. Session and ledger panes follow their
// replay-last feeds; completed sessions show up through the reward feed.
type Model struct {
	session sessionPort
	feeds   Feeds
	now     func() time.Time

	state      sessiondto.StateOutput
	ledger     ledgerdto.LedgerOutput
	lastReward *sessiondto.RewardEvent

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	spinner  spinner.Model
	status   string
	width    int
	height   int
}

func NewModel(session sessionPort, feeds Feeds, now func() time.Time) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Hot
	return Model{
		session: session,
		feeds:   feeds,
		now:     now,
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(paletteHints),
		spinner: sp,
		status:  "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitFor(m.feeds.State.C, func(v sessiondto.StateOutput) tea.Msg { return stateMsg(v) }),
		waitFor(m.feeds.Ledger.C, func(v ledgerdto.LedgerOutput) tea.Msg { return ledgerMsg(v) }),
		waitFor(m.feeds.Rewards.C, func(v sessiondto.RewardEvent) tea.Msg { return rewardMsg(v) }),
		tick(),
		m.spinner.Tick,
	)
}

// waitFor blocks on one feed value. A closed feed yields nil, which stops the loop.
func waitFor[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(v)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		switch msg.(type) {
		case tea.KeyMsg:
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width

	case stateMsg:
		m.state = sessiondto.StateOutput(msg)
		return m, waitFor(m.feeds.State.C, func(v sessiondto.StateOutput) tea.Msg { return stateMsg(v) })

	case ledgerMsg:
		m.ledger = ledgerdto.LedgerOutput(msg)
		return m, waitFor(m.feeds.Ledger.C, func(v ledgerdto.LedgerOutput) tea.Msg { return ledgerMsg(v) })

	case rewardMsg:
		reward := sessiondto.RewardEvent(msg)
		m.lastReward = &reward
		m.status = fmt.Sprintf("session complete: +%d energy", reward.EnergyGained)
		return m, waitFor(m.feeds.Rewards.C, func(v sessiondto.RewardEvent) tea.Msg { return rewardMsg(v) })

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionMsg:
		if msg.err != nil {
			m.status = theme.Bad.Render(msg.err.Error())
		} else if msg.status != "" {
			m.status = msg.status
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.feeds.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "start":
		if len(parts) != 2 {
			m.status = "usage: start <profile-id>"
			return m, nil
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			_, err := m.session.Start(ctx, parts[1])
			return "session started", err
		})
	case "stop":
		if len(parts) < 2 || len(parts) > 3 {
			m.status = "usage: stop <nfc|qr|code|manual> [credential]"
			return m, nil
		}
		credential := ""
		if len(parts) == 3 {
			credential = parts[2]
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			_, err := m.session.Stop(ctx, parts[1], credential)
			return "", err
		})
	case "timeout":
		return m, m.run(func(ctx context.Context) (string, error) {
			_, err := m.session.Timeout(ctx)
			return "", err
		})
	case "attempt":
		if len(parts) != 2 {
			m.status = "usage: attempt <package>"
			return m, nil
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			_, err := m.session.Attempt(ctx, parts[1])
			return "blocked " + parts[1], err
		})
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) run(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		status, err := fn(ctx)
		return actionMsg{status: status, err: err}
	}
}

func (m Model) View() string {
	header := theme.Title.Render("umbral") + "  " + theme.Muted.Render(m.now().Local().Format("15:04:05"))
	statusBar := m.renderStatusBar()

	var body string
	switch {
	case m.showHelp:
		body = m.help.View(m.keys)
	case m.palette.Visible():
		body = m.palette.View()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSession(), " ", m.renderLedger())
		if r := m.lastReward; r != nil {
			body += "\n" + m.renderReward(*r)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", statusBar)
}

func (m Model) renderSession() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Session") + "\n")
	if m.state.SessionID == "" {
		sb.WriteString(theme.Muted.Render("idle"))
		return theme.Pane.Width(34).Render(sb.String())
	}
	elapsed := max(m.now().Sub(m.state.StartedAt), 0).Truncate(time.Second)
	sb.WriteString(m.spinner.View() + " " + theme.Hot.Render(m.state.Status) + "\n")
	sb.WriteString(fmt.Sprintf("profile  %s\n", m.state.ProfileID))
	sb.WriteString(fmt.Sprintf("elapsed  %s\n", elapsed))
	sb.WriteString(fmt.Sprintf("blocked  %d\n", m.state.Attempts))
	if m.state.Strict {
		sb.WriteString(theme.Bad.Render("strict mode"))
	} else {
		sb.WriteString(theme.Muted.Render("manual unlock allowed"))
	}
	return theme.PaneActive.Width(34).Render(sb.String())
}

func (m Model) renderLedger() string {
	l := m.ledger
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Ledger") + "\n")
	sb.WriteString(fmt.Sprintf("level    %d  %s\n", l.Level, xpBar(l.CurrentXP, l.NextLevelXP, 16)))
	sb.WriteString(fmt.Sprintf("energy   %s / %d\n", theme.Energy.Render(fmt.Sprintf("%d", l.AvailableEnergy)), l.TotalEnergy))
	sb.WriteString(fmt.Sprintf("stars    %d\n", l.Stars))
	sb.WriteString(fmt.Sprintf("streak   %d (best %d)\n", l.CurrentStreak, l.LongestStreak))
	sb.WriteString(fmt.Sprintf("minutes  %d", l.TotalBlockingMinutes))
	return theme.Pane.Width(34).Render(sb.String())
}

func (m Model) renderReward(r sessiondto.RewardEvent) string {
	line := fmt.Sprintf("last session: %dmin, %d blocked, %s unlock, %s energy (x%.1f)",
		r.DurationMinutes, r.AttemptsBlocked, r.UnlockMethod, theme.Good.Render(fmt.Sprintf("+%d", r.EnergyGained)), r.Multiplier)
	if r.NewLevel > 0 {
		line += "  " + theme.Hot.Render(fmt.Sprintf("level %d!", r.NewLevel))
	}
	return line
}

func (m Model) renderStatusBar() string {
	right := theme.Muted.Render(":command  ?:help  q:quit")
	gap := max(m.width-lipgloss.Width(m.status)-lipgloss.Width(right), 1)
	return m.status + strings.Repeat(" ", gap) + right
}

// xpBar renders progress toward nextLevelXP. current and next are cumulative.
func xpBar(current, next int64, width int) string {
	filled := width
	if next > 0 {
		filled = int(min(current*int64(width)/next, int64(width)))
	}
	return theme.BarFull.Render(strings.Repeat("█", filled)) + theme.BarEmpty.Render(strings.Repeat("░", width-filled))
}
