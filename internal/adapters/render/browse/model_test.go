package browse

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"testing"

	"github.com/bnema/foodcook-cli/internal/application"
	"github.com/bnema/foodcook-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagedDishes struct {
	dishes []domain.Dish
	calls  int
}

func (p *pagedDishes) Request(_ context.Context, _ string, _ string, _ any, query url.Values, out any) error {
	p.calls++
	offset, _ := strconv.Atoi(query.Get("offset"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	end := min(offset+limit, len(p.dishes))

	page := domain.Page[domain.Dish]{Data: []domain.Dish{}, Total: len(p.dishes)}
	if offset < end {
		page.Data = p.dishes[offset:end]
	}

	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func newDishes(n int) *pagedDishes {
	p := &pagedDishes{}
	for i := 1; i <= n; i++ {
		p.dishes = append(p.dishes, domain.Dish{ID: uint(i), Name: "Dish " + strconv.Itoa(i)})
	}
	return p
}

func dishRow(d domain.Dish) string {
	return d.Name
}

// drain runs cmd and any batched children, feeding every message except
// spinner ticks back into the model.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()

	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, child := range msg {
			m = drain(t, m, child)
		}
	case loadedMsg:
		m, _ = m.Update(msg)
	}
	return m
}

func press(t *testing.T, m tea.Model, key string) (tea.Model, tea.Cmd) {
	t.Helper()
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func TestBrowseInitFetchesFirstPage(t *testing.T) {
	requester := newDishes(25)
	store := application.NewDishCollection(requester, nil, nil, application.PageOptions{})

	var m tea.Model = New[domain.Dish](context.Background(), "Dishes", store, dishRow)
	m = drain(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "10 of 25 loaded")
	assert.Contains(t, view, "> Dish 1")
	assert.Contains(t, view, "m more")
	assert.Equal(t, 1, requester.calls)
}

func TestBrowseLoadMoreUntilExhausted(t *testing.T) {
	requester := newDishes(15)
	store := application.NewDishCollection(requester, nil, nil, application.PageOptions{})

	var m tea.Model = New[domain.Dish](context.Background(), "Dishes", store, dishRow)
	m = drain(t, m, m.Init())

	m, cmd := press(t, m, "m")
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "loading...")
	m = drain(t, m, cmd)
	assert.Contains(t, m.View(), "15 of 15 loaded")
	assert.NotContains(t, m.View(), "m more")

	_, cmd = press(t, m, "m")
	assert.Nil(t, cmd)
	assert.Equal(t, 2, requester.calls)
}

func TestBrowseCursorStaysInBounds(t *testing.T) {
	store := application.NewDishCollection(newDishes(2), nil, nil, application.PageOptions{})

	var m tea.Model = New[domain.Dish](context.Background(), "Dishes", store, dishRow)
	m = drain(t, m, m.Init())

	m, _ = press(t, m, "k")
	assert.Equal(t, 0, m.(Model[domain.Dish]).Cursor())
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "j")
	assert.Equal(t, 1, m.(Model[domain.Dish]).Cursor())
	assert.Contains(t, m.View(), "> Dish 2")
}

func TestBrowseRefreshAndQuit(t *testing.T) {
	requester := newDishes(3)
	store := application.NewDishCollection(requester, nil, nil, application.PageOptions{})

	var m tea.Model = New[domain.Dish](context.Background(), "Dishes", store, dishRow)
	m = drain(t, m, m.Init())

	m, cmd := press(t, m, "r")
	m = drain(t, m, cmd)
	assert.Equal(t, 2, requester.calls)

	_, cmd = press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseShowsFetchError(t *testing.T) {
	store := application.NewDishCollection(failingRequester{}, nil, nil, application.PageOptions{})

	var m tea.Model = New[domain.Dish](context.Background(), "Dishes", store, dishRow)
	m = drain(t, m, m.Init())

	assert.Contains(t, m.View(), "error: internal server error")
}

type failingRequester struct{}

func (failingRequester) Request(context.Context, string, string, any, url.Values, any) error {
	return &domain.APIError{Kind: domain.KindServerError, Status: 500}
}
