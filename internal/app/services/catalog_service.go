package services

import (
	"context"
	"math/big"
	"strings"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// CatalogReader is the read surface of the faculty and major catalog.
type CatalogReader interface {
	UniversityName(ctx context.Context) (string, error)
	Faculties(ctx context.Context) ([]string, error)
	Majors(ctx context.Context, faculty string) ([]string, error)
	MajorCost(ctx context.Context, faculty, major string) (*big.Int, error)
}

// CatalogService exposes the on-chain course catalog.
type CatalogService interface {
	University(ctx context.Context) (*dto.UniversityResponse, error)
	Faculties(ctx context.Context) (*dto.FacultyListResponse, error)
	Majors(ctx context.Context, faculty string) (*dto.MajorListResponse, error)
	MajorCost(ctx context.Context, faculty, major string) (*dto.MajorCostResponse, error)
	HasMajor(ctx context.Context, faculty, major string) (bool, error)
}

type catalogServiceImpl struct {
	catalog CatalogReader
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(catalog CatalogReader) CatalogService {
	return &catalogServiceImpl{catalog: catalog}
}

func (s *catalogServiceImpl) University(ctx context.Context) (*dto.UniversityResponse, error) {
	name, err := s.catalog.UniversityName(ctx)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "university name read failed")
	}
	return &dto.UniversityResponse{Name: name}, nil
}

func (s *catalogServiceImpl) Faculties(ctx context.Context) (*dto.FacultyListResponse, error) {
	faculties, err := s.catalog.Faculties(ctx)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "faculty list read failed")
	}
	return &dto.FacultyListResponse{Faculties: faculties}, nil
}

func (s *catalogServiceImpl) Majors(ctx context.Context, faculty string) (*dto.MajorListResponse, error) {
	if strings.TrimSpace(faculty) == "" {
		return nil, apperrors.NewValidationError("faculty is required")
	}
	majors, err := s.catalog.Majors(ctx, faculty)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "major list read failed")
	}
	return &dto.MajorListResponse{Faculty: faculty, Majors: majors}, nil
}

func (s *catalogServiceImpl) MajorCost(ctx context.Context, faculty, major string) (*dto.MajorCostResponse, error) {
	if strings.TrimSpace(faculty) == "" || strings.TrimSpace(major) == "" {
		return nil, apperrors.NewValidationError("faculty and major are required")
	}
	cost, err := s.catalog.MajorCost(ctx, faculty, major)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "major cost read failed")
	}
	return &dto.MajorCostResponse{
		Faculty: faculty,
		Major:   major,
		Cost:    cost.String(),
	}, nil
}

// HasMajor reports whether the catalog lists major under faculty. Comparison
// is exact; the contract stores display names, not slugs.
func (s *catalogServiceImpl) HasMajor(ctx context.Context, faculty, major string) (bool, error) {
	majors, err := s.catalog.Majors(ctx, faculty)
	if err != nil {
		return false, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "major list read failed")
	}
	for _, m := range majors {
		if m == major {
			return true, nil
		}
	}
	return false, nil
}
