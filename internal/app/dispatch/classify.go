package dispatch

import (
	"errors"
	"strings"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// Reason is the fixed set of user-facing failure classifications. Raw ledger
// diagnostics never leave the dispatcher; everything maps into this set, with
// ReasonUnknown as the mandatory fallback.
type Reason string

const (
	ReasonOwnerCannotApply       Reason = "OWNER_CANNOT_APPLY"
	ReasonEnrollmentClosed       Reason = "ENROLLMENT_CLOSED"
	ReasonAlreadyEnrolled        Reason = "ALREADY_ENROLLED"
	ReasonAlreadyApplied         Reason = "ALREADY_APPLIED"
	ReasonAlreadyApprovedOrFinal Reason = "ALREADY_APPROVED_OR_FINAL"
	ReasonNotEligible            Reason = "NOT_ELIGIBLE"
	ReasonGPATooLow              Reason = "GPA_TOO_LOW"
	ReasonUserRejectedSigning    Reason = "USER_REJECTED_SIGNING"
	ReasonInsufficientFunds      Reason = "INSUFFICIENT_FUNDS"
	ReasonUnknown                Reason = "UNKNOWN"
)

// Message returns the text shown to the end user for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonOwnerCannotApply:
		return "The registrar owner cannot apply for enrollment. Use a different account."
	case ReasonEnrollmentClosed:
		return "Enrollment is currently closed."
	case ReasonAlreadyEnrolled:
		return "You have already enrolled."
	case ReasonAlreadyApplied:
		return "You have already applied for this major."
	case ReasonAlreadyApprovedOrFinal:
		return "The application is no longer pending."
	case ReasonNotEligible:
		return "Student not eligible: semester 7 has not been completed."
	case ReasonGPATooLow:
		return "GPA is below the 2.00 graduation threshold."
	case ReasonUserRejectedSigning:
		return "Signing was rejected."
	case ReasonInsufficientFunds:
		return "Insufficient funds to cover the fee and gas."
	default:
		return "Transaction failed. Please try again."
	}
}

// signatures maps revert-signature substrings to reasons. Checked in order;
// the custom-error names come from the deployed contracts.
var signatures = []struct {
	needle string
	reason Reason
}{
	{"NonOnlyOwner", ReasonOwnerCannotApply},
	{"EnrollmentClosed", ReasonEnrollmentClosed},
	{"AlreadyEnrolled", ReasonAlreadyEnrolled},
	{"AlreadyApplied", ReasonAlreadyApplied},
	{"AlreadyApproved", ReasonAlreadyApprovedOrFinal},
	{"NotEligible", ReasonNotEligible},
	{"GPATooLow", ReasonGPATooLow},
	{"insufficient funds", ReasonInsufficientFunds},
}

// Classify maps a raised ledger failure to a stable reason. Unrecognized
// failures become ReasonUnknown, never a crash and never the raw message.
func Classify(err error) Reason {
	if err == nil {
		return ReasonUnknown
	}
	if errors.Is(err, apperrors.ErrSigningDeclined) {
		return ReasonUserRejectedSigning
	}

	message := err.Error()
	for _, sig := range signatures {
		if strings.Contains(message, sig.needle) {
			return sig.reason
		}
	}
	if strings.Contains(strings.ToLower(message), "user rejected") {
		return ReasonUserRejectedSigning
	}
	return ReasonUnknown
}
