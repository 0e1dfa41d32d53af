package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
)

// JSONBackup implements the backup collaborator contract with a single JSON
// document per snapshot file.
type JSONBackup struct {
	log zerolog.Logger
}

func NewJSONBackup(log zerolog.Logger) *JSONBackup {
	return &JSONBackup{log: log}
}

// Export writes the catalog snapshot to path, replacing any existing file.
func (b *JSONBackup) Export(ctx context.Context, path string, funkos []domain.Funko) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(funkos, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	b.log.Info().Str("path", path).Int("funkos", len(funkos)).Msg("catalog exported")
	return nil
}

// Import reads a catalog snapshot from path.
func (b *JSONBackup) Import(ctx context.Context, path string) ([]domain.Funko, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	var funkos []domain.Funko
	if err := json.Unmarshal(data, &funkos); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	b.log.Info().Str("path", path).Int("funkos", len(funkos)).Msg("catalog imported")
	return funkos, nil
}
