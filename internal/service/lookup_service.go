package service

import (
	"context"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type lookupRepository interface {
	Faculties(ctx context.Context) ([]models.Faculty, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Technologies(ctx context.Context) ([]models.Technology, error)
}

// LookupService serves the reference lists used by forms and filters.
type LookupService struct {
	repo lookupRepository
}

// NewLookupService constructs the service.
func NewLookupService(repo lookupRepository) *LookupService {
	return &LookupService{repo: repo}
}

func (s *LookupService) Faculties(ctx context.Context) ([]models.Faculty, error) {
	items, err := s.repo.Faculties(ctx)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load faculties")
	}
	return items, nil
}

func (s *LookupService) Categories(ctx context.Context) ([]models.Category, error) {
	items, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load categories")
	}
	return items, nil
}

func (s *LookupService) Technologies(ctx context.Context) ([]models.Technology, error) {
	items, err := s.repo.Technologies(ctx)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load technologies")
	}
	return items, nil
}

// SubmissionOptions returns the categories and technologies offered by the submit form.
func (s *LookupService) SubmissionOptions(ctx context.Context) (*dto.SubmissionOptions, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	technologies, err := s.Technologies(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SubmissionOptions{Categories: categories, Technologies: technologies}, nil
}
