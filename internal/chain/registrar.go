package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
)

// Registrar wraps the student-records contract. Reads are plain eth_call
// queries; writes produce signed transactions through the caller's
// bind.TransactOpts.
type Registrar struct {
	contract *bind.BoundContract
	address  common.Address
}

func newRegistrar(address common.Address, backend bind.ContractBackend) *Registrar {
	return &Registrar{
		contract: bind.NewBoundContract(address, registrarParsedABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (r *Registrar) Address() common.Address {
	return r.address
}

// Owner returns the contract owner address.
func (r *Registrar) Owner(ctx context.Context) (common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "owner"); err != nil {
		return common.Address{}, fmt.Errorf("owner query failed: %w", err)
	}
	return out[0].(common.Address), nil
}

// IsOpen reports whether enrollment applications are currently accepted.
func (r *Registrar) IsOpen(ctx context.Context) (bool, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isOpen"); err != nil {
		return false, fmt.Errorf("isOpen query failed: %w", err)
	}
	return out[0].(bool), nil
}

// Application returns the applicant's application record at the given slot.
// The contract returns a zero record rather than reverting when no
// application exists; callers check Application.Exists.
func (r *Registrar) Application(ctx context.Context, applicant common.Address, index uint64) (models.Application, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "applications", applicant, new(big.Int).SetUint64(index))
	if err != nil {
		return models.Application{}, fmt.Errorf("applications query failed: %w", err)
	}
	return models.Application{
		Applicant: out[0].(common.Address),
		Name:      out[1].(string),
		Faculty:   out[2].(string),
		Major:     out[3].(string),
		Status:    models.ApplicationStatus(out[4].(uint8)),
	}, nil
}

// Student returns the caller's student record. getStudent reads
// msg.sender-scoped state, so it is issued as an eth_call with From set to
// the student's address.
func (r *Registrar) Student(ctx context.Context, student common.Address) (models.Student, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx, From: student}, &out, "getStudent")
	if err != nil {
		return models.Student{}, fmt.Errorf("getStudent query failed: %w", err)
	}
	return models.Student{
		ID:             out[0].(string),
		Name:           out[1].(string),
		Email:          out[2].(string),
		Faculty:        out[3].(string),
		Major:          out[4].(string),
		Semester:       out[5].(uint8),
		Status:         models.StudentStatus(out[6].(uint8)),
		ValidityPeriod: out[7].(string),
	}, nil
}

// GPA returns the student's GPA in hundredths (0..400).
func (r *Registrar) GPA(ctx context.Context, student common.Address) (uint16, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getGPA", student); err != nil {
		return 0, fmt.Errorf("getGPA query failed: %w", err)
	}
	return out[0].(uint16), nil
}

// HasGraduated reports whether the student has been graduated by the owner.
func (r *Registrar) HasGraduated(ctx context.Context, student common.Address) (bool, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "hasGraduated", student); err != nil {
		return false, fmt.Errorf("hasGraduated query failed: %w", err)
	}
	return out[0].(bool), nil
}

// PendingApplicants returns addresses with pending applications (owner view).
func (r *Registrar) PendingApplicants(ctx context.Context) ([]common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getPendingApplicants"); err != nil {
		return nil, fmt.Errorf("getPendingApplicants query failed: %w", err)
	}
	return out[0].([]common.Address), nil
}

// EnrolledStudents returns all enrolled student addresses (owner view).
func (r *Registrar) EnrolledStudents(ctx context.Context) ([]common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "listEnrolledStudents"); err != nil {
		return nil, fmt.Errorf("listEnrolledStudents query failed: %w", err)
	}
	return out[0].([]common.Address), nil
}

// Apply submits an enrollment application for the sender.
func (r *Registrar) Apply(opts *bind.TransactOpts, name, faculty, major string) (*types.Transaction, error) {
	return r.contract.Transact(opts, "applyForEnrollment", name, faculty, major)
}

// Enroll pays the enrollment fee and enrolls the sender. The fee must be set
// as opts.Value; the contract rejects any other amount.
func (r *Registrar) Enroll(opts *bind.TransactOpts) (*types.Transaction, error) {
	return r.contract.Transact(opts, "enrollStudent")
}

// UpdateApplicationStatus moves an application to the given status (owner only).
func (r *Registrar) UpdateApplicationStatus(opts *bind.TransactOpts, applicant common.Address, major string, status models.ApplicationStatus) (*types.Transaction, error) {
	return r.contract.Transact(opts, "updateApplicationStatus", applicant, major, uint8(status))
}

// UpdateGPA sets a student's GPA in hundredths (owner only).
func (r *Registrar) UpdateGPA(opts *bind.TransactOpts, student common.Address, gpa uint16) (*types.Transaction, error) {
	return r.contract.Transact(opts, "updateStudentGPA", student, gpa)
}

// Graduate graduates a student (owner only). Eligibility is enforced by the
// contract; local checks are advisory.
func (r *Registrar) Graduate(opts *bind.TransactOpts, student common.Address) (*types.Transaction, error) {
	return r.contract.Transact(opts, "graduateStudent", student)
}
