package ports

import (
	"context"

	"github.com/bnema/foodcook-cli/internal/domain"
)

type ProfileRepository interface {
	Get(ctx context.Context) (domain.User, error)
	Save(ctx context.Context, user domain.User) error
	Delete(ctx context.Context) error
}
