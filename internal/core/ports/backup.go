package ports

import (
	"context"

	"github.com/madirex/funko-server/internal/core/domain"
)

// BackupService reads and writes catalog snapshots outside the serving loop.
type BackupService interface {
	Export(ctx context.Context, path string, funkos []domain.Funko) error
	Import(ctx context.Context, path string) ([]domain.Funko, error)
}
