package models

import "github.com/ethereum/go-ethereum/common"

// ApplicationStatus mirrors the registrar contract's application status enum
type ApplicationStatus uint8

const (
	ApplicationPending  ApplicationStatus = 0
	ApplicationApproved ApplicationStatus = 1
	ApplicationRejected ApplicationStatus = 2
	ApplicationEnrolled ApplicationStatus = 3
)

// String returns the display name of the status
func (s ApplicationStatus) String() string {
	switch s {
	case ApplicationPending:
		return "Pending"
	case ApplicationApproved:
		return "Approved"
	case ApplicationRejected:
		return "Rejected"
	case ApplicationEnrolled:
		return "Enrolled"
	default:
		return "Unknown"
	}
}

// Application is one enrollment application as stored by the registrar
// contract. A zero applicant address is the ledger's sentinel for "no
// application exists".
type Application struct {
	Applicant common.Address    `json:"applicant"`
	Name      string            `json:"name"`
	Faculty   string            `json:"faculty"`
	Major     string            `json:"major"`
	Status    ApplicationStatus `json:"status"`
}

// Exists reports whether the record denotes a real application
func (a *Application) Exists() bool {
	return a != nil && a.Applicant != (common.Address{})
}
