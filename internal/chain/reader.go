package chain

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/metrics"
)

// RegistrarReader is the per-identity read surface of the registrar contract.
type RegistrarReader interface {
	Owner(ctx context.Context) (common.Address, error)
	IsOpen(ctx context.Context) (bool, error)
	Application(ctx context.Context, applicant common.Address, index uint64) (models.Application, error)
	Student(ctx context.Context, student common.Address) (models.Student, error)
	GPA(ctx context.Context, student common.Address) (uint16, error)
	HasGraduated(ctx context.Context, student common.Address) (bool, error)
}

// CostReader resolves the enrollment fee for a (faculty, major) pair.
type CostReader interface {
	MajorCost(ctx context.Context, faculty, major string) (*big.Int, error)
}

// ClaimReader reads the certificate claim flag.
type ClaimReader interface {
	HasClaimed(ctx context.Context, student common.Address) (bool, error)
}

// Reader assembles identity snapshots from the three contracts. Fields are
// fetched concurrently and independently; a failed read leaves the field
// unknown instead of failing the snapshot. Snapshots are cached per identity
// until invalidated or older than maxAge, and the dispatcher invalidates
// after every confirmed write so the next read hits the ledger again.
type Reader struct {
	registrar   RegistrarReader
	costs       CostReader
	certificate ClaimReader
	maxAge      time.Duration
	metrics     metrics.Metrics
	logger      zerolog.Logger

	mu    sync.Mutex
	cache map[common.Address]*Snapshot
}

// NewReader creates a snapshot reader. maxAge <= 0 disables caching.
func NewReader(registrar RegistrarReader, costs CostReader, certificate ClaimReader, maxAge time.Duration, m metrics.Metrics, lgr zerolog.Logger) *Reader {
	if m == nil {
		m = metrics.NewNopMetrics()
	}
	return &Reader{
		registrar:   registrar,
		costs:       costs,
		certificate: certificate,
		maxAge:      maxAge,
		metrics:     m,
		logger:      lgr,
		cache:       make(map[common.Address]*Snapshot),
	}
}

// Snapshot returns the identity's snapshot, from cache when fresh.
func (r *Reader) Snapshot(ctx context.Context, address common.Address) *Snapshot {
	if r.maxAge > 0 {
		r.mu.Lock()
		cached, ok := r.cache[address]
		r.mu.Unlock()
		if ok && time.Since(cached.FetchedAt) < r.maxAge {
			return cached
		}
	}
	return r.Refresh(ctx, address)
}

// Refresh fetches a fresh snapshot from the ledger, bypassing the cache.
func (r *Reader) Refresh(ctx context.Context, address common.Address) *Snapshot {
	snap := &Snapshot{Address: address}

	var mu sync.Mutex
	miss := func(field string, err error) {
		r.metrics.IncReadErrors(field)
		r.logger.Warn().Err(err).Str("field", field).Str("address", address.Hex()).Msg("Ledger read failed, field left unknown")
		mu.Lock()
		snap.Missing = append(snap.Missing, field)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		owner, err := r.registrar.Owner(gctx)
		if err != nil {
			miss("owner", err)
			return nil
		}
		snap.Owner = &owner
		return nil
	})
	g.Go(func() error {
		open, err := r.registrar.IsOpen(gctx)
		if err != nil {
			miss("enrollmentOpen", err)
			return nil
		}
		snap.EnrollmentOpen = &open
		return nil
	})
	g.Go(func() error {
		app, err := r.registrar.Application(gctx, address, 0)
		if err != nil {
			miss("application", err)
			return nil
		}
		snap.Application = &app
		return nil
	})
	g.Go(func() error {
		student, err := r.registrar.Student(gctx, address)
		if err != nil {
			miss("student", err)
			return nil
		}
		snap.Student = &student
		return nil
	})
	g.Go(func() error {
		gpa, err := r.registrar.GPA(gctx, address)
		if err != nil {
			miss("gpa", err)
			return nil
		}
		snap.GPA = &gpa
		return nil
	})
	g.Go(func() error {
		graduated, err := r.registrar.HasGraduated(gctx, address)
		if err != nil {
			miss("graduated", err)
			return nil
		}
		snap.Graduated = &graduated
		return nil
	})
	g.Go(func() error {
		claimed, err := r.certificate.HasClaimed(gctx, address)
		if err != nil {
			miss("certificateClaimed", err)
			return nil
		}
		snap.CertificateClaimed = &claimed
		return nil
	})
	_ = g.Wait()

	// The fee depends on the application's faculty/major, so it is resolved
	// after the application read. A since-changed catalog entry may 404 here;
	// that is a transient inconsistency, not a fatal condition.
	if snap.HasApplication() {
		cost, err := r.costs.MajorCost(ctx, snap.Application.Faculty, snap.Application.Major)
		if err != nil {
			miss("majorCost", err)
		} else {
			snap.MajorCost = cost
		}
	}

	snap.FetchedAt = time.Now()
	r.metrics.IncSnapshotRefresh()

	r.mu.Lock()
	r.cache[address] = snap
	r.mu.Unlock()

	return snap
}

// Invalidate drops the cached snapshot for the identity. Called by the
// dispatcher after a confirmed write.
func (r *Reader) Invalidate(address common.Address) {
	r.mu.Lock()
	delete(r.cache, address)
	r.mu.Unlock()
}
