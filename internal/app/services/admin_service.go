package services

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/dispatch"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/workflow"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// RegistrarAdmin is the owner-side surface of the enrollment registrar.
type RegistrarAdmin interface {
	PendingApplicants(ctx context.Context) ([]common.Address, error)
	EnrolledStudents(ctx context.Context) ([]common.Address, error)
	Application(ctx context.Context, applicant common.Address, index uint64) (models.Application, error)
	UpdateApplicationStatus(opts *bind.TransactOpts, applicant common.Address, major string, status models.ApplicationStatus) (*types.Transaction, error)
	UpdateGPA(opts *bind.TransactOpts, student common.Address, gpa uint16) (*types.Transaction, error)
	Graduate(opts *bind.TransactOpts, student common.Address) (*types.Transaction, error)
}

// AdminService drives the registrar-owner side of the workflow: reviewing
// applications, recording grades, and graduating students. Ownership itself
// is enforced on-chain; the role gate here only keeps students from burning
// gas on doomed transactions. Like the enrollment actions, a slot conflict
// returns the already in-flight call together with the conflict error.
type AdminService interface {
	PendingApplicants(ctx context.Context) (*dto.ApplicantListResponse, error)
	EnrolledStudents(ctx context.Context) (*dto.StudentListResponse, error)
	ApplicationOf(ctx context.Context, address string) (*dto.ApplicationResponse, error)
	Approve(ctx context.Context, owner string, req *dto.DecisionRequest) (*dto.ActionResponse, error)
	Reject(ctx context.Context, owner string, req *dto.DecisionRequest) (*dto.ActionResponse, error)
	UpdateGPA(ctx context.Context, owner string, req *dto.GPAUpdateRequest) (*dto.ActionResponse, error)
	Graduate(ctx context.Context, owner string, req *dto.GraduateRequest) (*dto.ActionResponse, error)
}

type adminServiceImpl struct {
	registrar  RegistrarAdmin
	signer     SignerSource
	dispatcher *dispatch.Dispatcher
	logger     zerolog.Logger
}

// NewAdminService creates a new admin service instance
func NewAdminService(registrar RegistrarAdmin, signer SignerSource, dispatcher *dispatch.Dispatcher, lgr zerolog.Logger) AdminService {
	return &adminServiceImpl{
		registrar:  registrar,
		signer:     signer,
		dispatcher: dispatcher,
		logger:     lgr,
	}
}

func (s *adminServiceImpl) PendingApplicants(ctx context.Context) (*dto.ApplicantListResponse, error) {
	applicants, err := s.registrar.PendingApplicants(ctx)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "applicant list read failed")
	}
	out := make([]string, 0, len(applicants))
	for _, a := range applicants {
		out = append(out, a.Hex())
	}
	return &dto.ApplicantListResponse{Applicants: out}, nil
}

func (s *adminServiceImpl) EnrolledStudents(ctx context.Context) (*dto.StudentListResponse, error) {
	students, err := s.registrar.EnrolledStudents(ctx)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "student list read failed")
	}
	out := make([]string, 0, len(students))
	for _, st := range students {
		out = append(out, st.Hex())
	}
	return &dto.StudentListResponse{Students: out}, nil
}

// ApplicationOf reads one applicant's current application. A single live
// application per applicant is the contract's model, so the read is always
// of the first slot.
func (s *adminServiceImpl) ApplicationOf(ctx context.Context, address string) (*dto.ApplicationResponse, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	app, err := s.registrar.Application(ctx, addr, 0)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChainUnavailable, "application read failed")
	}
	if !app.Exists() {
		return nil, apperrors.NewNotFoundError("no application on record for that address")
	}
	return &dto.ApplicationResponse{Application: &app}, nil
}

func (s *adminServiceImpl) Approve(ctx context.Context, owner string, req *dto.DecisionRequest) (*dto.ActionResponse, error) {
	return s.decide(ctx, owner, req, dispatch.SlotApprove, models.ApplicationApproved)
}

func (s *adminServiceImpl) Reject(ctx context.Context, owner string, req *dto.DecisionRequest) (*dto.ActionResponse, error) {
	return s.decide(ctx, owner, req, dispatch.SlotReject, models.ApplicationRejected)
}

func (s *adminServiceImpl) decide(ctx context.Context, owner string, req *dto.DecisionRequest, slot dispatch.Slot, status models.ApplicationStatus) (*dto.ActionResponse, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	applicant, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}

	opts, err := s.signer.TransactOpts(ctx, ownerAddr, req.Passphrase)
	if err != nil {
		return nil, err
	}

	call, err := s.dispatcher.Dispatch(ownerAddr, slot, func(ctx context.Context) (*types.Transaction, error) {
		opts.Context = ctx
		return s.registrar.UpdateApplicationStatus(opts, applicant, req.Major, status)
	}, applicant)
	return &dto.ActionResponse{Call: call}, err
}

// UpdateGPA encodes the human-entered decimal grade into the contract's
// hundredths integer and records it for the student.
func (s *adminServiceImpl) UpdateGPA(ctx context.Context, owner string, req *dto.GPAUpdateRequest) (*dto.ActionResponse, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	student, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}
	gpa, err := workflow.ParseGPA(req.GPA)
	if err != nil {
		return nil, err
	}

	opts, err := s.signer.TransactOpts(ctx, ownerAddr, req.Passphrase)
	if err != nil {
		return nil, err
	}

	call, err := s.dispatcher.Dispatch(ownerAddr, dispatch.SlotUpdateGPA, func(ctx context.Context) (*types.Transaction, error) {
		opts.Context = ctx
		return s.registrar.UpdateGPA(opts, student, gpa)
	}, student)
	return &dto.ActionResponse{Call: call}, err
}

// Graduate marks a student as graduated. Eligibility (semester and grade
// floors) is enforced by the contract; an ineligible student surfaces as a
// classified failure on the call handle.
func (s *adminServiceImpl) Graduate(ctx context.Context, owner string, req *dto.GraduateRequest) (*dto.ActionResponse, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	student, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}

	opts, err := s.signer.TransactOpts(ctx, ownerAddr, req.Passphrase)
	if err != nil {
		return nil, err
	}

	call, err := s.dispatcher.Dispatch(ownerAddr, dispatch.SlotGraduate, func(ctx context.Context) (*types.Transaction, error) {
		opts.Context = ctx
		return s.registrar.Graduate(opts, student)
	}, student)
	return &dto.ActionResponse{Call: call}, err
}
