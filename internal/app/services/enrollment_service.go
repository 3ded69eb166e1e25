package services

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/dispatch"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/workflow"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/chain"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// SnapshotSource serves per-identity ledger snapshots.
type SnapshotSource interface {
	Snapshot(ctx context.Context, address common.Address) *chain.Snapshot
	Refresh(ctx context.Context, address common.Address) *chain.Snapshot
}

// SignerSource produces transact options for a held key, unlocked per call.
type SignerSource interface {
	TransactOpts(ctx context.Context, address common.Address, passphrase string) (*bind.TransactOpts, error)
}

// RegistrarTransactor is the write surface a student exercises on the
// enrollment registrar.
type RegistrarTransactor interface {
	Apply(opts *bind.TransactOpts, name, faculty, major string) (*types.Transaction, error)
	Enroll(opts *bind.TransactOpts) (*types.Transaction, error)
}

// CertificateMinter mints the graduation certificate for its caller.
type CertificateMinter interface {
	Mint(opts *bind.TransactOpts) (*types.Transaction, error)
}

// EnrollmentService drives the student-facing side of the enrollment
// workflow: status projection and the apply / pay / claim actions. Action
// methods return the dispatched call; on a slot conflict they return the
// already in-flight call together with the conflict error so the caller can
// keep polling it.
type EnrollmentService interface {
	Status(ctx context.Context, address string, role models.RoleType) (*dto.StatusResponse, error)
	Apply(ctx context.Context, address string, req *dto.ApplyRequest) (*dto.ActionResponse, error)
	Enroll(ctx context.Context, address string, req *dto.EnrollRequest) (*dto.ActionResponse, error)
	ClaimCertificate(ctx context.Context, address string, req *dto.ClaimRequest) (*dto.ActionResponse, error)
	Lookup(callID string) (*dto.ActionResponse, error)
}

type enrollmentServiceImpl struct {
	snapshots   SnapshotSource
	signer      SignerSource
	registrar   RegistrarTransactor
	certificate CertificateMinter
	catalog     CatalogService
	dispatcher  *dispatch.Dispatcher
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	snapshots SnapshotSource,
	signer SignerSource,
	registrar RegistrarTransactor,
	certificate CertificateMinter,
	catalog CatalogService,
	dispatcher *dispatch.Dispatcher,
	lgr zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		snapshots:   snapshots,
		signer:      signer,
		registrar:   registrar,
		certificate: certificate,
		catalog:     catalog,
		dispatcher:  dispatcher,
		logger:      lgr,
	}
}

// Status fetches the caller's snapshot and projects it into a display
// status plus permitted actions. Read failures degrade to unknown fields
// rather than erroring; the projection absorbs the gaps.
func (s *enrollmentServiceImpl) Status(ctx context.Context, address string, role models.RoleType) (*dto.StatusResponse, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	snap := s.snapshots.Snapshot(ctx, addr)
	return &dto.StatusResponse{
		Role:       string(role),
		Snapshot:   snap,
		Projection: workflow.Project(snap, role),
	}, nil
}

// Apply validates the application locally against the catalog, then
// dispatches the apply transaction. Gating on enrollment being open is left
// to the contract; a closed window surfaces as a classified failure.
func (s *enrollmentServiceImpl) Apply(ctx context.Context, address string, req *dto.ApplyRequest) (*dto.ActionResponse, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	found, err := s.catalog.HasMajor(ctx, req.Faculty, req.Major)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewCustomError(apperrors.ErrUnknownMajor, "major is not offered under that faculty")
	}

	opts, err := s.signer.TransactOpts(ctx, addr, req.Passphrase)
	if err != nil {
		return nil, err
	}

	call, err := s.dispatcher.Dispatch(addr, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		opts.Context = ctx
		return s.registrar.Apply(opts, req.Name, req.Faculty, req.Major)
	})
	return &dto.ActionResponse{Call: call}, err
}

// Enroll pays the enrollment fee for an approved application. The fee is
// taken from the snapshot's resolved major cost and attached as the exact
// transaction value; if the cost could not be resolved the action is
// refused rather than sent with a guessed amount.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, address string, req *dto.EnrollRequest) (*dto.ActionResponse, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	snap := s.snapshots.Snapshot(ctx, addr)
	if snap.MajorCost == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCostUnresolved, "enrollment fee could not be resolved, retry shortly")
	}

	opts, err := s.signer.TransactOpts(ctx, addr, req.Passphrase)
	if err != nil {
		return nil, err
	}
	opts.Value = snap.MajorCost

	call, err := s.dispatcher.Dispatch(addr, dispatch.SlotEnroll, func(ctx context.Context) (*types.Transaction, error) {
		opts.Context = ctx
		return s.registrar.Enroll(opts)
	})
	return &dto.ActionResponse{Call: call}, err
}

// ClaimCertificate mints the caller's graduation certificate. Eligibility
// is enforced by the certificate contract.
func (s *enrollmentServiceImpl) ClaimCertificate(ctx context.Context, address string, req *dto.ClaimRequest) (*dto.ActionResponse, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	opts, err := s.signer.TransactOpts(ctx, addr, req.Passphrase)
	if err != nil {
		return nil, err
	}

	call, err := s.dispatcher.Dispatch(addr, dispatch.SlotClaimCertificate, func(ctx context.Context) (*types.Transaction, error) {
		opts.Context = ctx
		return s.certificate.Mint(opts)
	})
	return &dto.ActionResponse{Call: call}, err
}

// Lookup returns the lifecycle state of a previously dispatched call.
func (s *enrollmentServiceImpl) Lookup(callID string) (*dto.ActionResponse, error) {
	call, err := s.dispatcher.Lookup(callID)
	if err != nil {
		return nil, err
	}
	return &dto.ActionResponse{Call: call}, nil
}

func parseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, apperrors.NewCustomError(apperrors.ErrInvalidAddress, "address is not a valid hex address")
	}
	return common.HexToAddress(address), nil
}
