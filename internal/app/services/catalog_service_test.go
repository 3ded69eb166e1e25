package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/services"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

type fakeCatalogReader struct {
	name      string
	faculties []string
	majors    map[string][]string
	costs     map[string]*big.Int
	err       error
}

func (f *fakeCatalogReader) UniversityName(ctx context.Context) (string, error) {
	return f.name, f.err
}

func (f *fakeCatalogReader) Faculties(ctx context.Context) ([]string, error) {
	return f.faculties, f.err
}

func (f *fakeCatalogReader) Majors(ctx context.Context, faculty string) ([]string, error) {
	return f.majors[faculty], f.err
}

func (f *fakeCatalogReader) MajorCost(ctx context.Context, faculty, major string) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.costs[faculty+"/"+major], nil
}

func newCatalogFixture() (*fakeCatalogReader, services.CatalogService) {
	reader := &fakeCatalogReader{
		name:      "UniReg",
		faculties: []string{"Engineering", "Science"},
		majors: map[string][]string{
			"Engineering": {"CompSci", "Electrical"},
		},
		costs: map[string]*big.Int{
			"Engineering/CompSci": big.NewInt(500000000000000000),
		},
	}
	return reader, services.NewCatalogService(reader)
}

func TestCatalogReads(t *testing.T) {
	_, svc := newCatalogFixture()

	university, err := svc.University(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UniReg", university.Name)

	faculties, err := svc.Faculties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Science"}, faculties.Faculties)

	majors, err := svc.Majors(context.Background(), "Engineering")
	require.NoError(t, err)
	assert.Equal(t, []string{"CompSci", "Electrical"}, majors.Majors)
}

func TestMajorCostAsDecimalString(t *testing.T) {
	_, svc := newCatalogFixture()

	cost, err := svc.MajorCost(context.Background(), "Engineering", "CompSci")
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", cost.Cost)
}

func TestMajorsRequiresFaculty(t *testing.T) {
	_, svc := newCatalogFixture()

	_, err := svc.Majors(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestHasMajor(t *testing.T) {
	_, svc := newCatalogFixture()

	found, err := svc.HasMajor(context.Background(), "Engineering", "CompSci")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.HasMajor(context.Background(), "Engineering", "Astrology")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = svc.HasMajor(context.Background(), "Science", "CompSci")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCatalogReadFailure(t *testing.T) {
	reader, svc := newCatalogFixture()
	reader.err = errors.New("connection refused")

	_, err := svc.University(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrChainUnavailable)

	_, err = svc.Faculties(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrChainUnavailable)
}
