package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const categoriesPath = "/categories"

// CategoryStore caches the full category list. Categories are few, so there is
// no pagination or search; every mutation re-lists.
type CategoryStore struct {
	requester ports.Requester
	notifier  ports.Notifier
	log       logrus.FieldLogger

	mu         sync.RWMutex
	categories []domain.Category
	loading    bool
	lastErr    string
}

func NewCategoryStore(requester ports.Requester, notifier ports.Notifier, log logrus.FieldLogger) *CategoryStore {
	return &CategoryStore{
		requester: requester,
		notifier:  notifierOrNop(notifier),
		log:       loggerOrDiscard(log).WithField("collection", "categories"),
	}
}

// List replaces the cache. The server answers either {"data": [...]} or a
// bare array; both are accepted.
func (s *CategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	s.begin()

	var raw json.RawMessage
	err := s.requester.Request(ctx, http.MethodGet, categoriesPath, nil, nil, &raw)
	var categories []domain.Category
	if err == nil {
		if categories, err = decodeCategories(raw); err != nil {
			s.notifier.Notify(domain.Notification{Level: domain.NotificationError, Message: domain.UserMessage(err)})
		}
	}

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = domain.UserMessage(err)
	} else {
		s.categories = categories
	}
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return append([]domain.Category(nil), categories...), nil
}

func (s *CategoryStore) Get(ctx context.Context, id uint) (domain.Category, error) {
	var category domain.Category
	if err := s.requester.Request(ctx, http.MethodGet, categoryPath(id), nil, nil, &category); err != nil {
		return domain.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return category, nil
}

func (s *CategoryStore) Create(ctx context.Context, input domain.CategoryInput) (domain.Category, error) {
	var created domain.Category
	if err := s.mutate(ctx, http.MethodPost, categoriesPath, input, &created); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return created, s.afterMutation(ctx, "created")
}

func (s *CategoryStore) Update(ctx context.Context, id uint, input domain.CategoryInput) (domain.Category, error) {
	var updated domain.Category
	if err := s.mutate(ctx, http.MethodPut, categoryPath(id), input, &updated); err != nil {
		return domain.Category{}, fmt.Errorf("update category %d: %w", id, err)
	}
	return updated, s.afterMutation(ctx, "updated")
}

func (s *CategoryStore) Delete(ctx context.Context, id uint) error {
	if err := s.mutate(ctx, http.MethodDelete, categoryPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return s.afterMutation(ctx, "deleted")
}

func (s *CategoryStore) FindByID(id uint) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range s.categories {
		if category.ID == id {
			return category, true
		}
	}
	return domain.Category{}, false
}

func (s *CategoryStore) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

func (s *CategoryStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError is the user-facing text of the most recent failure, "" after a
// success.
func (s *CategoryStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *CategoryStore) mutate(ctx context.Context, method string, path string, body any, out any) error {
	s.begin()

	err := s.requester.Request(ctx, method, path, body, nil, out)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = domain.UserMessage(err)
	}
	s.mu.Unlock()

	return err
}

func (s *CategoryStore) afterMutation(ctx context.Context, verb string) error {
	s.notifier.Notify(domain.Notification{Level: domain.NotificationSuccess, Message: "Category " + verb})

	if _, err := s.List(ctx); err != nil {
		return fmt.Errorf("refresh categories after %s: %w", verb, err)
	}
	return nil
}

func (s *CategoryStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func decodeCategories(raw json.RawMessage) ([]domain.Category, error) {
	payload := raw
	if !gjson.ParseBytes(raw).IsArray() {
		data := gjson.GetBytes(raw, "data")
		if !data.Exists() || data.Type == gjson.Null {
			return []domain.Category{}, nil
		}
		payload = json.RawMessage(data.Raw)
	}

	var categories []domain.Category
	if err := json.Unmarshal(payload, &categories); err != nil {
		return nil, &domain.APIError{Kind: domain.KindOther, Message: "invalid response payload", Err: err}
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func categoryPath(id uint) string {
	return categoriesPath + "/" + strconv.FormatUint(uint64(id), 10)
}
