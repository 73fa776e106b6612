package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

// Terminal prints notifications as single styled lines. Colors are dropped
// automatically when the writer is not a terminal.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	quiet   bool
}

var _ ports.Notifier = (*Terminal)(nil)

func NewTerminal(out io.Writer) *Terminal {
	renderer := lipgloss.NewRenderer(out)
	return &Terminal{
		out:     out,
		success: renderer.NewStyle().Foreground(lipgloss.Color("42")),
		failure: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

// SetQuiet suppresses success messages. Errors are always printed.
func (t *Terminal) SetQuiet(quiet bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quiet = quiet
}

func (t *Terminal) Notify(n domain.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var line string
	switch n.Level {
	case domain.NotificationError:
		line = t.failure.Render("error: " + n.Message)
	default:
		if t.quiet {
			return
		}
		line = t.success.Render(n.Message)
	}

	_, _ = fmt.Fprintln(t.out, line)
}
