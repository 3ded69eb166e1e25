package dto

import (
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/dispatch"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/workflow"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/chain"
)

// ApplyRequest submits an enrollment application
type ApplyRequest struct {
	Name       string `json:"name" binding:"required" example:"Jane Doe"`
	Faculty    string `json:"faculty" binding:"required" example:"Engineering"`
	Major      string `json:"major" binding:"required" example:"CompSci"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// EnrollRequest pays the enrollment fee for an approved application
type EnrollRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

// ClaimRequest mints the graduation certificate
type ClaimRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

// StatusResponse is the caller's snapshot and its workflow projection
type StatusResponse struct {
	Role       string              `json:"role" enums:"OWNER,STUDENT"`
	Snapshot   *chain.Snapshot     `json:"snapshot"`
	Projection workflow.Projection `json:"projection"`
}

// ActionResponse reports a dispatched call's lifecycle state
type ActionResponse struct {
	Call dispatch.Call `json:"call"`
}
