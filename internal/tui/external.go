package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
)

// Opener hands a URL to something outside the terminal.
type Opener func(ctx context.Context, url string) error

// SystemOpener starts the platform's URL handler without waiting for it.
func SystemOpener(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (a *App) openExternal(url string) tea.Cmd {
	open := a.opener
	ctx := a.ctx
	return func() tea.Msg {
		return externalOpenedMsg{url: url, err: open(context.WithoutCancel(ctx), url)}
	}
}
