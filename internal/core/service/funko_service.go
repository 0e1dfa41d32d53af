package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
	"github.com/madirex/funko-server/internal/core/ports"
)

// FunkoService orchestrates the catalog use cases: it validates input, talks
// to the persistent store, keeps the cache coherent, and publishes mutation
// notifications. Side-effect ordering is deliberate: on update the cache is
// refreshed before the notification goes out and before success is returned;
// on delete the cache entry is invalidated before the store delete is awaited.
type FunkoService struct {
	repo   ports.FunkoRepository
	cache  ports.FunkoCache
	hub    ports.NotificationHub
	backup ports.BackupService
	logger zerolog.Logger
}

func NewFunkoService(
	repo ports.FunkoRepository,
	cache ports.FunkoCache,
	hub ports.NotificationHub,
	backup ports.BackupService,
	logger zerolog.Logger,
) *FunkoService {
	return &FunkoService{repo: repo, cache: cache, hub: hub, backup: backup, logger: logger}
}

func (s *FunkoService) FindAll(ctx context.Context) ([]domain.Funko, error) {
	return s.repo.FindAll(ctx)
}

// FindByModel reports not-found when no funko has the model, matching the
// behaviour of the id lookup.
func (s *FunkoService) FindByModel(ctx context.Context, model domain.Model) ([]domain.Funko, error) {
	funkos, err := s.repo.FindByModel(ctx, model)
	if err != nil {
		return nil, err
	}
	if len(funkos) == 0 {
		return nil, fmt.Errorf("%w: no funkos with model %s", domain.ErrFunkoNotFound, model)
	}
	return funkos, nil
}

func (s *FunkoService) FindByReleaseYear(ctx context.Context, year int) ([]domain.Funko, error) {
	funkos, err := s.repo.FindByReleaseYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(funkos) == 0 {
		return nil, fmt.Errorf("%w: no funkos released in %d", domain.ErrFunkoNotFound, year)
	}
	return funkos, nil
}

// FindByID is cache-aside: a hit is served from the cache, a miss falls
// through to the store and populates the cache on the way back.
func (s *FunkoService) FindByID(ctx context.Context, id string) (*domain.Funko, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}
	funko, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(id, *funko)
	return funko, nil
}

// Save validates and persists a new funko, then publishes a CREATED
// notification. The cache is not pre-populated; the first read does that.
func (s *FunkoService) Save(ctx context.Context, f domain.Funko) (*domain.Funko, error) {
	if err := domain.ValidateFunko(f); err != nil {
		return nil, err
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.Save(ctx, f)
	if err != nil {
		s.logger.Error().Err(err).Str("id", f.ID).Msg("failed to save funko")
		return nil, err
	}
	s.logger.Info().Str("id", saved.ID).Str("name", saved.Name).Msg("funko created")
	s.hub.Publish(domain.Notification{Kind: domain.NotificationCreated, Funko: *saved})
	return saved, nil
}

// Update confirms existence, persists, refreshes the cache entry, and only
// then publishes UPDATED and returns.
func (s *FunkoService) Update(ctx context.Context, id string, f domain.Funko) (*domain.Funko, error) {
	if err := domain.ValidateFunko(f); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	f.ID = id
	f.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, f)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update funko")
		return nil, err
	}
	s.cache.Put(id, *updated)
	s.logger.Info().Str("id", id).Msg("funko updated")
	s.hub.Publish(domain.Notification{Kind: domain.NotificationUpdated, Funko: *updated})
	return updated, nil
}

// Delete confirms existence, invalidates the cache entry, deletes from the
// store, and publishes DELETED with the removed funko. If the store delete
// fails after invalidation the cache entry is not restored: the next read
// simply misses and falls through to the store.
func (s *FunkoService) Delete(ctx context.Context, id string) (*domain.Funko, error) {
	funko, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Remove(id)

	removed, err := s.repo.Delete(ctx, id)
	if err != nil || !removed {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete funko")
		return nil, fmt.Errorf("%w: id %s", domain.ErrFunkoNotRemoved, id)
	}
	s.logger.Info().Str("id", id).Msg("funko deleted")
	s.hub.Publish(domain.Notification{Kind: domain.NotificationDeleted, Funko: *funko})
	return funko, nil
}

// ExportData snapshots the full catalog into a JSON backup file.
func (s *FunkoService) ExportData(ctx context.Context, path string) error {
	funkos, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	return s.backup.Export(ctx, path, funkos)
}

// ImportData reads funkos from a JSON backup file.
func (s *FunkoService) ImportData(ctx context.Context, path string) ([]domain.Funko, error) {
	return s.backup.Import(ctx, path)
}

// Shutdown releases the cache janitor; in-flight requests are unaffected.
func (s *FunkoService) Shutdown() {
	s.cache.Shutdown()
}
