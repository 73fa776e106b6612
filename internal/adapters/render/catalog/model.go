package catalog

import (
	"errors"
	"io"
	"time"

	"github.com/bnema/foodcook-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	view   func(styles) string
	styles styles
	output string
}

func newModel(view func(styles) string) model {
	return model{view: view, styles: newStyles()}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func render(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(view),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

func Dishes(dishes []domain.Dish, meta ListMeta) (string, error) {
	return render(func(s styles) string { return dishesView(dishes, meta, s) })
}

func Dish(dish domain.Dish) (string, error) {
	return render(func(s styles) string { return dishView(dish, s) })
}

func Ingredients(ingredients []domain.Ingredient, meta ListMeta) (string, error) {
	return render(func(s styles) string { return ingredientsView(ingredients, meta, s) })
}

func Categories(categories []domain.Category) (string, error) {
	return render(func(s styles) string { return categoriesView(categories, s) })
}

func MealRecords(records []domain.MealRecord, meta ListMeta, now time.Time) (string, error) {
	return render(func(s styles) string { return mealRecordsView(records, meta, now, s) })
}

func MealRecord(record domain.MealRecord, now time.Time) (string, error) {
	return render(func(s styles) string { return mealRecordView(record, now, s) })
}

func Cart(cart *domain.Cart) (string, error) {
	return render(func(s styles) string { return cartView(cart, s) })
}

func Session(info SessionInfo) (string, error) {
	return render(func(s styles) string { return sessionView(info, s) })
}
