package workflow

import (
	"fmt"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/chain"
)

// DisplayStatus is the user-facing position in the enrollment workflow.
type DisplayStatus string

const (
	// StatusUnknown means a field required for derivation has not arrived
	// yet; render a neutral loading state, never an error.
	StatusUnknown                 DisplayStatus = "UNKNOWN"
	StatusNotApplied              DisplayStatus = "NOT_APPLIED"
	StatusPending                 DisplayStatus = "PENDING"
	StatusApprovedAwaitingPayment DisplayStatus = "APPROVED_AWAITING_PAYMENT"
	StatusRejected                DisplayStatus = "REJECTED"
	StatusEnrolled                DisplayStatus = "ENROLLED"
	StatusGraduatedUnclaimed      DisplayStatus = "GRADUATED_UNCLAIMED"
	StatusGraduatedClaimed        DisplayStatus = "GRADUATED_CLAIMED"
	StatusDroppedOut              DisplayStatus = "DROPPED_OUT"
)

// Action names a ledger-mutating operation the caller may perform now.
type Action string

const (
	ActionApply              Action = "APPLY"
	ActionPayAndEnroll       Action = "PAY_AND_ENROLL"
	ActionClaimCertificate   Action = "CLAIM_CERTIFICATE"
	ActionApproveApplication Action = "APPROVE_APPLICATION"
	ActionRejectApplication  Action = "REJECT_APPLICATION"
	ActionUpdateGPA          Action = "UPDATE_GPA"
	ActionGraduateStudent    Action = "GRADUATE_STUDENT"
)

// Projection is the derived view of a snapshot: one status, the actions the
// caller may take, and advisory notes.
type Projection struct {
	Status  DisplayStatus `json:"displayStatus"`
	Actions []Action      `json:"permittedActions"`
	Notes   []string      `json:"eligibilityNotes,omitempty"`
}

// Project derives the workflow projection from a snapshot. It is pure and
// deterministic: identical inputs give identical projections, and it never
// performs I/O. Unknown fields degrade to StatusUnknown or withheld actions
// rather than errors, so partially populated snapshots are safe.
func Project(snap *chain.Snapshot, role models.RoleType) Projection {
	status := deriveStatus(snap)
	actions, notes := permittedActions(snap, status, role)
	return Projection{
		Status:  status,
		Actions: actions,
		Notes:   notes,
	}
}

// deriveStatus places the identity in the workflow, first match wins:
// NotApplied, Pending, ApprovedAwaitingPayment, Rejected, then the
// student-record states Enrolled, GraduatedUnclaimed, GraduatedClaimed,
// DroppedOut.
func deriveStatus(snap *chain.Snapshot) DisplayStatus {
	if snap.Application == nil {
		return StatusUnknown
	}

	if snap.HasApplication() {
		switch snap.Application.Status {
		case models.ApplicationPending:
			return StatusPending
		case models.ApplicationRejected:
			return StatusRejected
		case models.ApplicationApproved:
			if snap.Student == nil {
				// Approved with the student read missing: cannot tell
				// "awaiting payment" from "already enrolled".
				return StatusUnknown
			}
			if !snap.EnrolledStudent() {
				return StatusApprovedAwaitingPayment
			}
		}
		// Approved-and-enrolled or Enrolled fall through to the record.
	} else {
		if snap.Student == nil {
			return StatusUnknown
		}
		if !snap.EnrolledStudent() {
			return StatusNotApplied
		}
		// Enrolled without a visible application: the record decides.
	}

	if !snap.EnrolledStudent() {
		// The application claims enrollment but no record is visible yet;
		// treat as a transient inconsistency.
		return StatusUnknown
	}

	switch snap.Student.Status {
	case models.StudentActive:
		return StatusEnrolled
	case models.StudentGraduated:
		if snap.CertificateClaimed == nil {
			return StatusUnknown
		}
		if *snap.CertificateClaimed {
			return StatusGraduatedClaimed
		}
		return StatusGraduatedUnclaimed
	case models.StudentDroppedOut:
		return StatusDroppedOut
	default:
		return StatusUnknown
	}
}

// permittedActions computes the action set for (status, role). The four
// admin actions attach for the owner regardless of the owner's own workflow
// position.
func permittedActions(snap *chain.Snapshot, status DisplayStatus, role models.RoleType) ([]Action, []string) {
	var actions []Action
	var notes []string

	switch status {
	case StatusNotApplied:
		// The owner is offered Apply like any other wallet; the registrar
		// contract rejects an owner application and the failure surfaces as
		// an owner-cannot-apply result.
		if snap.EnrollmentOpen != nil {
			if *snap.EnrollmentOpen {
				actions = append(actions, ActionApply)
			} else {
				notes = append(notes, "enrollment is currently closed")
			}
		}
	case StatusApprovedAwaitingPayment:
		if snap.MajorCost != nil {
			actions = append(actions, ActionPayAndEnroll)
		} else {
			notes = append(notes, "enrollment fee not yet resolved, retry shortly")
		}
	case StatusEnrolled:
		if snap.Student != nil && snap.GPA != nil {
			graduated := snap.Graduated != nil && *snap.Graduated
			if !graduated {
				if EligibleForGraduation(snap.Student.Semester, *snap.GPA) {
					// Graduation is owner-initiated, never self-service.
					notes = append(notes, "graduation requirements met, awaiting registrar graduation")
				} else {
					notes = append(notes, fmt.Sprintf(
						"graduation requires completing semester %d with a GPA of at least %s",
						GraduationMinSemester, FormatGPA(GraduationMinGPA)))
				}
			}
		}
	case StatusGraduatedUnclaimed:
		actions = append(actions, ActionClaimCertificate)
	}

	if role == models.RoleOwner {
		actions = append(actions,
			ActionApproveApplication,
			ActionRejectApplication,
			ActionUpdateGPA,
			ActionGraduateStudent,
		)
	}

	return actions, notes
}
