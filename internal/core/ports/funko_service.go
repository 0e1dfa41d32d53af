package ports

import (
	"context"

	"github.com/madirex/funko-server/internal/core/domain"
)

// FunkoService defines the catalog use-case operations dispatched by the
// session handler.
type FunkoService interface {
	FindAll(ctx context.Context) ([]domain.Funko, error)
	FindByID(ctx context.Context, id string) (*domain.Funko, error)
	FindByModel(ctx context.Context, model domain.Model) ([]domain.Funko, error)
	FindByReleaseYear(ctx context.Context, year int) ([]domain.Funko, error)
	Save(ctx context.Context, f domain.Funko) (*domain.Funko, error)
	Update(ctx context.Context, id string, f domain.Funko) (*domain.Funko, error)
	Delete(ctx context.Context, id string) (*domain.Funko, error)

	ExportData(ctx context.Context, path string) error
	ImportData(ctx context.Context, path string) ([]domain.Funko, error)

	// Shutdown releases the cache janitor. In-flight requests are unaffected.
	Shutdown()
}
