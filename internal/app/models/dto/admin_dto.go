package dto

import "github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"

// DecisionRequest approves or rejects a pending application
type DecisionRequest struct {
	Address    string `json:"address" binding:"required" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	Major      string `json:"major" binding:"required" example:"CompSci"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// GPAUpdateRequest sets a student's GPA. The value is the human-entered
// decimal string (0.00-4.00); encoding happens gateway-side.
type GPAUpdateRequest struct {
	Address    string `json:"address" binding:"required"`
	GPA        string `json:"gpa" binding:"required" example:"3.25"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// GraduateRequest graduates an eligible student
type GraduateRequest struct {
	Address    string `json:"address" binding:"required"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// ApplicantListResponse lists addresses with pending applications
type ApplicantListResponse struct {
	Applicants []string `json:"applicants"`
}

// StudentListResponse lists enrolled student addresses
type StudentListResponse struct {
	Students []string `json:"students"`
}

// ApplicationResponse is one applicant's current application
type ApplicationResponse struct {
	Application *models.Application `json:"application"`
}
