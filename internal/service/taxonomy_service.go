package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/school-inventory-api/internal/models"
	"github.com/noah-isme/school-inventory-api/internal/repository"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
)

type taxonomyRepository interface {
	Kind() models.TaxonomyKind
	List(ctx context.Context) ([]models.TaxonomyEntry, error)
	Create(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) (int64, error)
	Delete(ctx context.Context, name string) error
}

// TaxonomyService manages the category or publisher registry.
type TaxonomyService struct {
	repo   taxonomyRepository
	logger *zap.Logger
}

// NewTaxonomyService constructs a TaxonomyService.
func NewTaxonomyService(repo taxonomyRepository, logger *zap.Logger) *TaxonomyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaxonomyService{repo: repo, logger: logger}
}

// List returns every registered name with the number of items using it.
func (s *TaxonomyService) List(ctx context.Context) ([]models.TaxonomyEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list "+s.noun())
	}
	if entries == nil {
		entries = []models.TaxonomyEntry{}
	}
	return entries, nil
}

// Create registers a new name.
func (s *TaxonomyService) Create(ctx context.Context, name string) (*models.TaxonomyEntry, error) {
	name = models.NormalizeName(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, s.noun()+" name is required")
	}
	if err := s.repo.Create(ctx, name); err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("taxonomy entry created", zap.String("kind", string(s.repo.Kind())), zap.String("name", name))
	return &models.TaxonomyEntry{Name: name}, nil
}

// Rename changes a name and every item referencing it. Renaming to the same
// name is a no-op.
func (s *TaxonomyService) Rename(ctx context.Context, oldName, newName string) (*models.TaxonomyEntry, error) {
	oldName = models.NormalizeName(oldName)
	newName = models.NormalizeName(newName)
	if oldName == "" || newName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "old and new "+s.noun()+" names are required")
	}
	if oldName == newName {
		return &models.TaxonomyEntry{Name: newName}, nil
	}
	moved, err := s.repo.Rename(ctx, oldName, newName)
	if err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("taxonomy entry renamed",
		zap.String("kind", string(s.repo.Kind())),
		zap.String("from", oldName),
		zap.String("to", newName),
		zap.Int64("items", moved))
	return &models.TaxonomyEntry{Name: newName, Count: int(moved)}, nil
}

// Delete removes an unused name.
func (s *TaxonomyService) Delete(ctx context.Context, name string) error {
	name = models.NormalizeName(name)
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, s.noun()+" name is required")
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *TaxonomyService) noun() string {
	return string(s.repo.Kind())
}

func (s *TaxonomyService) translate(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, s.noun()+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrDuplicate, s.noun()+" already exists")
	case errors.Is(err, repository.ErrInUse):
		return appErrors.Clone(appErrors.ErrInUse, s.noun()+" is used by existing items")
	default:
		return appErrors.Internal(err, "failed to update "+s.noun())
	}
}
