package ports

import (
	"context"

	"github.com/madirex/funko-server/internal/core/domain"
)

// FunkoRepository is the persistent-store contract consumed by the service
// layer. Implementations may be remote; every method takes a context and may
// fail with a store-level error.
type FunkoRepository interface {
	FindAll(ctx context.Context) ([]domain.Funko, error)
	// FindByID returns domain.ErrFunkoNotFound when no funko has the id.
	FindByID(ctx context.Context, id string) (*domain.Funko, error)
	FindByModel(ctx context.Context, model domain.Model) ([]domain.Funko, error)
	FindByReleaseYear(ctx context.Context, year int) ([]domain.Funko, error)
	Save(ctx context.Context, f domain.Funko) (*domain.Funko, error)
	Update(ctx context.Context, id string, f domain.Funko) (*domain.Funko, error)
	// Delete reports whether a document was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}
