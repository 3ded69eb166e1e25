package chain_test

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/chain"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/metrics"
)

var (
	ownerAddr   = common.HexToAddress("0x85B7e058d1eDaeBaF9b64fd1AE9F0c515230030E")
	studentAddr = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

type fakeRegistrar struct {
	application models.Application
	student     models.Student
	gpa         uint16
	graduated   bool
	open        bool

	applicationErr error
	studentErr     error
	gpaErr         error

	calls atomic.Int64
}

func (f *fakeRegistrar) Owner(ctx context.Context) (common.Address, error) {
	f.calls.Add(1)
	return ownerAddr, nil
}

func (f *fakeRegistrar) IsOpen(ctx context.Context) (bool, error) {
	return f.open, nil
}

func (f *fakeRegistrar) Application(ctx context.Context, applicant common.Address, index uint64) (models.Application, error) {
	if f.applicationErr != nil {
		return models.Application{}, f.applicationErr
	}
	return f.application, nil
}

func (f *fakeRegistrar) Student(ctx context.Context, student common.Address) (models.Student, error) {
	if f.studentErr != nil {
		return models.Student{}, f.studentErr
	}
	return f.student, nil
}

func (f *fakeRegistrar) GPA(ctx context.Context, student common.Address) (uint16, error) {
	if f.gpaErr != nil {
		return 0, f.gpaErr
	}
	return f.gpa, nil
}

func (f *fakeRegistrar) HasGraduated(ctx context.Context, student common.Address) (bool, error) {
	return f.graduated, nil
}

type fakeCosts struct {
	cost *big.Int
	err  error
}

func (f *fakeCosts) MajorCost(ctx context.Context, faculty, major string) (*big.Int, error) {
	return f.cost, f.err
}

type fakeClaims struct {
	claimed bool
}

func (f *fakeClaims) HasClaimed(ctx context.Context, student common.Address) (bool, error) {
	return f.claimed, nil
}

func newReader(registrar *fakeRegistrar, costs *fakeCosts, maxAge time.Duration) *chain.Reader {
	return chain.NewReader(registrar, costs, &fakeClaims{}, maxAge, metrics.NewNopMetrics(), zerolog.Nop())
}

func TestRefreshFullSnapshot(t *testing.T) {
	registrar := &fakeRegistrar{
		open: true,
		application: models.Application{
			Applicant: studentAddr,
			Name:      "Jane Doe",
			Faculty:   "Engineering",
			Major:     "CompSci",
			Status:    models.ApplicationApproved,
		},
		gpa: 325,
	}
	costs := &fakeCosts{cost: big.NewInt(500)}
	r := newReader(registrar, costs, 0)

	snap := r.Refresh(context.Background(), studentAddr)

	require.NotNil(t, snap.Owner)
	assert.Equal(t, ownerAddr, *snap.Owner)
	require.NotNil(t, snap.EnrollmentOpen)
	assert.True(t, *snap.EnrollmentOpen)
	assert.True(t, snap.HasApplication())
	require.NotNil(t, snap.GPA)
	assert.Equal(t, uint16(325), *snap.GPA)
	require.NotNil(t, snap.MajorCost)
	assert.Equal(t, int64(500), snap.MajorCost.Int64())
	assert.Empty(t, snap.Missing)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestRefreshToleratesFieldFailures(t *testing.T) {
	registrar := &fakeRegistrar{
		open:           true,
		applicationErr: errors.New("connection reset"),
		studentErr:     errors.New("connection reset"),
	}
	r := newReader(registrar, &fakeCosts{}, 0)

	snap := r.Refresh(context.Background(), studentAddr)

	// Failed fields stay unknown, the rest of the snapshot survives.
	assert.Nil(t, snap.Application)
	assert.Nil(t, snap.Student)
	require.NotNil(t, snap.Owner)
	assert.Contains(t, snap.Missing, "application")
	assert.Contains(t, snap.Missing, "student")
}

func TestRefreshCostFailureLeavesCostUnknown(t *testing.T) {
	registrar := &fakeRegistrar{
		application: models.Application{
			Applicant: studentAddr,
			Faculty:   "Engineering",
			Major:     "CompSci",
			Status:    models.ApplicationApproved,
		},
	}
	costs := &fakeCosts{err: errors.New("major not found")}
	r := newReader(registrar, costs, 0)

	snap := r.Refresh(context.Background(), studentAddr)

	assert.Nil(t, snap.MajorCost)
	assert.Contains(t, snap.Missing, "majorCost")
}

func TestRefreshSkipsCostWithoutApplication(t *testing.T) {
	registrar := &fakeRegistrar{}
	costs := &fakeCosts{err: errors.New("must not be called")}
	r := newReader(registrar, costs, 0)

	snap := r.Refresh(context.Background(), studentAddr)

	assert.Nil(t, snap.MajorCost)
	assert.NotContains(t, snap.Missing, "majorCost")
}

func TestSnapshotServesFromCache(t *testing.T) {
	registrar := &fakeRegistrar{open: true}
	r := newReader(registrar, &fakeCosts{}, time.Minute)

	first := r.Snapshot(context.Background(), studentAddr)
	callsAfterFirst := registrar.calls.Load()
	second := r.Snapshot(context.Background(), studentAddr)

	assert.Same(t, first, second)
	assert.Equal(t, callsAfterFirst, registrar.calls.Load())
}

func TestInvalidateForcesRefresh(t *testing.T) {
	registrar := &fakeRegistrar{open: true}
	r := newReader(registrar, &fakeCosts{}, time.Minute)

	first := r.Snapshot(context.Background(), studentAddr)
	r.Invalidate(studentAddr)
	second := r.Snapshot(context.Background(), studentAddr)

	assert.NotSame(t, first, second)
}

func TestSnapshotCacheIsPerIdentity(t *testing.T) {
	registrar := &fakeRegistrar{open: true}
	r := newReader(registrar, &fakeCosts{}, time.Minute)

	mine := r.Snapshot(context.Background(), studentAddr)
	other := r.Snapshot(context.Background(), ownerAddr)

	assert.NotSame(t, mine, other)
	assert.Equal(t, studentAddr, mine.Address)
	assert.Equal(t, ownerAddr, other.Address)
}
