package application

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/foodcook-cli/internal/adapters/api"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// fakeAPI is an in-memory foodcook server good enough for store tests.
type fakeAPI struct {
	mu          sync.Mutex
	requests    []recordedRequest
	nextID      uint
	dishes      []domain.Dish
	mealRecords []domain.MealRecord
	users       map[string]domain.User
	tokens      map[string]string
	failNext    map[string]int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	f := &fakeAPI{
		nextID:   1,
		users:    map[string]domain.User{},
		tokens:   map[string]string{},
		failNext: map[string]int{},
	}
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)
	return f, server
}

func (f *fakeAPI) seedDishes(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := 0; i < n; i++ {
		id := f.nextID
		f.nextID++
		f.dishes = append(f.dishes, domain.Dish{ID: id, Name: "Dish " + strconv.Itoa(int(id)), Price: float64(id)})
	}
}

// failPath makes the next request to METHOD path answer with status.
func (f *fakeAPI) failPath(method string, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext[method+" "+path] = status
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body := new(strings.Builder)
	if r.Body != nil {
		_, _ = io.Copy(body, r.Body)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: path, Query: r.URL.Query(), Body: body.String()})

	if status, ok := f.failNext[r.Method+" "+path]; ok {
		delete(f.failNext, r.Method+" "+path)
		writeJSON(w, status, map[string]string{"error": "forced failure"})
		return
	}

	switch {
	case r.Method == http.MethodPost && (path == "/auth/register" || path == "/auth/login"):
		f.handleAuth(w, path, body.String())
		return
	case !strings.HasPrefix(path, "/auth/") && !f.authorized(r):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
		return
	}

	switch {
	case r.Method == http.MethodGet && path == "/auth/profile":
		username, ok := f.tokens[bearer(r)]
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, f.users[username])
	case r.Method == http.MethodGet && path == "/dishes":
		writeJSON(w, http.StatusOK, paginate(f.dishes, r.URL.Query()))
	case r.Method == http.MethodGet && path == "/dishes/search":
		q := r.URL.Query().Get("q")
		var matches []domain.Dish
		for _, dish := range f.dishes {
			if strings.Contains(dish.Name, q) {
				matches = append(matches, dish)
			}
		}
		writeJSON(w, http.StatusOK, paginate(matches, r.URL.Query()))
	case r.Method == http.MethodPost && path == "/dishes":
		var input domain.DishInput
		if err := json.Unmarshal([]byte(body.String()), &input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		dish := domain.Dish{ID: f.nextID, Name: input.Name, Price: input.Price}
		f.nextID++
		f.dishes = append([]domain.Dish{dish}, f.dishes...)
		writeJSON(w, http.StatusCreated, dish)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/dishes/"):
		var input domain.DishInput
		if err := json.Unmarshal([]byte(body.String()), &input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		id := parseID(path)
		for i, dish := range f.dishes {
			if dish.ID == id {
				f.dishes[i] = domain.Dish{ID: id, Name: input.Name, Price: input.Price}
				writeJSON(w, http.StatusOK, f.dishes[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "dish not found"})
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/dishes/"):
		id := parseID(path)
		for i, dish := range f.dishes {
			if dish.ID == id {
				f.dishes = append(f.dishes[:i], f.dishes[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "dish not found"})
	case r.Method == http.MethodGet && path == "/meal-records":
		writeJSON(w, http.StatusOK, paginate(f.mealRecords, r.URL.Query()))
	case r.Method == http.MethodPost && path == "/meal-records":
		var input domain.MealRecordInput
		if err := json.Unmarshal([]byte(body.String()), &input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		record := domain.MealRecord{ID: f.nextID, Thoughts: input.Thoughts, CreatedAt: time.Now().UTC()}
		f.nextID++
		for _, dishID := range input.DishIDs {
			record.Dishes = append(record.Dishes, domain.MealRecordDish{DishID: dishID, MealRecordID: record.ID, Quantity: 1})
		}
		f.mealRecords = append([]domain.MealRecord{record}, f.mealRecords...)
		writeJSON(w, http.StatusCreated, record)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "route not found"})
	}
}

func (f *fakeAPI) handleAuth(w http.ResponseWriter, path string, body string) {
	var reg domain.Registration
	if err := json.Unmarshal([]byte(body), &reg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if path == "/auth/register" {
		f.users[reg.Username] = domain.User{ID: uint(len(f.users) + 1), Username: reg.Username, Email: reg.Email, Role: domain.RoleUser}
	}
	user, ok := f.users[reg.Username]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token := "token-" + reg.Username
	f.tokens[token] = reg.Username
	writeJSON(w, http.StatusOK, domain.AuthResult{Token: token, User: user})
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	_, ok := f.tokens[bearer(r)]
	return ok
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func paginate[T any](items []T, query url.Values) domain.Page[T] {
	offset, _ := strconv.Atoi(query.Get("offset"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	page := domain.Page[T]{Data: []T{}, Total: len(items)}
	if offset >= len(items) {
		return page
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	page.Data = append(page.Data, items[offset:end]...)
	return page
}

func parseID(path string) uint {
	id, _ := strconv.ParseUint(path[strings.LastIndexByte(path, '/')+1:], 10, 64)
	return uint(id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type memoryCredentials struct {
	mu    sync.Mutex
	token string
}

func (m *memoryCredentials) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memoryCredentials) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func newAPIClient(t *testing.T, server *httptest.Server, creds *memoryCredentials, notifier *recordingNotifier) *api.Client {
	t.Helper()

	client, err := api.NewClient(api.Config{BaseURL: server.URL + "/api"}, creds,
		api.WithHTTPClient(server.Client()),
		api.WithNotifier(notifier),
	)
	require.NoError(t, err)
	return client
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (r *recordingNotifier) Notify(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, string(n.Level)+": "+n.Message)
	}
	return out
}
