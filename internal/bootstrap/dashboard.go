package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javikin/umbral-sub003/internal/ui/app"
)

// RunDashboard blocks on the live dashboard until the user quits or ctx ends.
// Achievement progress is synced in the background while it runs.
func RunDashboard(ctx context.Context, a *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feeds := app.Feeds{
		State:   a.Sessions.Subscribe(),
		Ledger:  a.Ledger.Subscribe(),
		Rewards: a.Sessions.SubscribeRewards(),
	}
	defer feeds.Close()

	go a.Rewards.Run(ctx)

	model := app.NewModel(a.SessionCLI, feeds, a.clock.Now)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
