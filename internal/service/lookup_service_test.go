package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type stubLookupRepo struct {
	technologiesErr error
}

func (stubLookupRepo) Faculties(context.Context) ([]models.Faculty, error) {
	return []models.Faculty{{ID: "fac-1", Name: "Engineering"}}, nil
}

func (stubLookupRepo) Categories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: "cat-1", Name: "Agritech"}}, nil
}

func (s stubLookupRepo) Technologies(context.Context) ([]models.Technology, error) {
	if s.technologiesErr != nil {
		return nil, s.technologiesErr
	}
	return []models.Technology{{ID: "tech-1", Name: "Go"}}, nil
}

func TestLookupServiceSubmissionOptions(t *testing.T) {
	svc := NewLookupService(stubLookupRepo{})

	opts, err := svc.SubmissionOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts.Categories, 1)
	assert.Equal(t, "Go", opts.Technologies[0].Name)

	faculties, err := svc.Faculties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fac-1", faculties[0].ID)
}

func TestLookupServiceWrapsErrors(t *testing.T) {
	svc := NewLookupService(stubLookupRepo{technologiesErr: errors.New("relation missing")})

	_, err := svc.SubmissionOptions(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
