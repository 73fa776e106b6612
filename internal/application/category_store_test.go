package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryServer(t *testing.T, list http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var lists atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/categories":
			lists.Add(1)
			list(w, r)
		case r.Method == http.MethodGet && r.URL.Path == "/api/categories/2":
			writeJSON(w, http.StatusOK, domain.Category{ID: 2, Name: "Soup"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/categories":
			writeJSON(w, http.StatusCreated, domain.Category{ID: 3, Name: "Dessert"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/categories/2":
			writeJSON(w, http.StatusOK, domain.Category{ID: 2, Name: "Soups"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/categories/9":
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "route not found"})
		}
	}))
	t.Cleanup(server.Close)
	return server, &lists
}

func TestCategoryStoreListAcceptsEnvelopeAndBareArray(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "envelope", body: map[string]any{"data": []domain.Category{{ID: 1, Name: "Main"}, {ID: 2, Name: "Soup"}}}},
		{name: "bare", body: []domain.Category{{ID: 1, Name: "Main"}, {ID: 2, Name: "Soup"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newCategoryServer(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			})
			store := NewCategoryStore(newAPIClient(t, server, &memoryCredentials{token: "t"}, &recordingNotifier{}), nil, nil)

			categories, err := store.List(context.Background())
			require.NoError(t, err)
			require.Len(t, categories, 2)

			found, ok := store.FindByID(2)
			assert.True(t, ok)
			assert.Equal(t, "Soup", found.Name)
			_, ok = store.FindByID(7)
			assert.False(t, ok)
			assert.False(t, store.Loading())
			assert.Empty(t, store.LastError())
		})
	}
}

func TestCategoryStoreNullDataIsEmpty(t *testing.T) {
	server, _ := newCategoryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": nil})
	})
	store := NewCategoryStore(newAPIClient(t, server, &memoryCredentials{token: "t"}, &recordingNotifier{}), nil, nil)

	categories, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategoryStoreCreateNotifiesAndRelists(t *testing.T) {
	server, lists := newCategoryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Category{{ID: 3, Name: "Dessert"}})
	})
	notifier := &recordingNotifier{}
	store := NewCategoryStore(newAPIClient(t, server, &memoryCredentials{token: "t"}, notifier), notifier, nil)

	created, err := store.Create(context.Background(), domain.CategoryInput{Name: "Dessert"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), created.ID)
	assert.Equal(t, int32(1), lists.Load())
	assert.Equal(t, []string{"success: Category created"}, notifier.messages())

	_, ok := store.FindByID(3)
	assert.True(t, ok)
}

func TestCategoryStoreDeleteFailureRecordsErrorWithoutRelist(t *testing.T) {
	server, lists := newCategoryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Category{})
	})
	notifier := &recordingNotifier{}
	store := NewCategoryStore(newAPIClient(t, server, &memoryCredentials{token: "t"}, notifier), notifier, nil)

	err := store.Delete(context.Background(), 9)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.KindNotFound, apiErr.Kind)
	assert.Equal(t, "category not found", store.LastError())
	assert.Equal(t, int32(0), lists.Load())
	assert.Equal(t, []string{"error: category not found"}, notifier.messages())
}

func TestCategoryStoreGetDoesNotTouchCache(t *testing.T) {
	server, lists := newCategoryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Category{})
	})
	store := NewCategoryStore(newAPIClient(t, server, &memoryCredentials{token: "t"}, &recordingNotifier{}), nil, nil)

	category, err := store.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Soup", category.Name)
	assert.Empty(t, store.Categories())
	assert.Equal(t, int32(0), lists.Load())
}

func TestCategoryStoreUpdateNotifiesOnceAndRelists(t *testing.T) {
	server, lists := newCategoryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []domain.Category{{ID: 2, Name: "Soups"}}})
	})
	notifier := &recordingNotifier{}
	store := NewCategoryStore(newAPIClient(t, server, &memoryCredentials{token: "t"}, notifier), notifier, nil)

	updated, err := store.Update(context.Background(), 2, domain.CategoryInput{Name: "Soups"})
	require.NoError(t, err)
	assert.Equal(t, "Soups", updated.Name)
	assert.Equal(t, int32(1), lists.Load())
	assert.Equal(t, []string{"success: Category updated"}, notifier.messages())

	found, ok := store.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Soups", found.Name)
}
