package browse

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/foodcook-cli/internal/application"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Source is the slice of a collection store the browser drives.
type Source[T any] interface {
	Fetch(ctx context.Context, filters url.Values) (domain.Page[T], error)
	LoadMore(ctx context.Context) (domain.Page[T], bool, error)
	State() application.CollectionState[T]
}

type loadedMsg struct {
	err error
}

// Model is an interactive list over a Source. Keys: up/down (k/j) move the
// cursor, m loads the next page, r re-fetches, q quits.
type Model[T any] struct {
	ctx     context.Context
	title   string
	source  Source[T]
	row     func(T) string
	spinner spinner.Model

	cursor  int
	loading bool
	err     error
	state   application.CollectionState[T]
}

func New[T any](ctx context.Context, title string, source Source[T], row func(T) string) Model[T] {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model[T]{
		ctx:     ctx,
		title:   title,
		source:  source,
		row:     row,
		spinner: s,
		loading: true,
		state:   source.State(),
	}
}

func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		m.state = m.source.State()
		if m.cursor >= len(m.state.Items) {
			m.cursor = max(len(m.state.Items)-1, 0)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m Model[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Items)-1 {
			m.cursor++
		}
	case "m":
		if m.loading || !m.state.HasMore() {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadMore())
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetch())
	}

	return m, nil
}

func (m Model[T]) fetch() tea.Cmd {
	return func() tea.Msg {
		_, err := m.source.Fetch(m.ctx, nil)
		return loadedMsg{err: err}
	}
}

func (m Model[T]) loadMore() tea.Cmd {
	return func() tea.Msg {
		_, _, err := m.source.LoadMore(m.ctx)
		return loadedMsg{err: err}
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

func (m Model[T]) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d of %d loaded", len(m.state.Items), m.state.Total)))
	b.WriteString("\n\n")

	for i, item := range m.state.Items {
		line := "  " + m.row(item)
		if i == m.cursor {
			line = selectedStyle.Render("> " + m.row(item))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " loading...\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+domain.UserMessage(m.err)) + "\n")
	}

	help := "j/k move • r refresh • q quit"
	if m.state.HasMore() {
		help = "j/k move • m more • r refresh • q quit"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// Cursor is the index of the highlighted item.
func (m Model[T]) Cursor() int {
	return m.cursor
}

// Run blocks until the user quits.
func Run[T any](ctx context.Context, title string, source Source[T], row func(T) string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, title, source, row), opts...).Run()
	return err
}
