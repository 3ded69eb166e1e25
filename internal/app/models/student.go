package models

// StudentStatus mirrors the registrar contract's student status enum
type StudentStatus uint8

const (
	StudentActive     StudentStatus = 0
	StudentGraduated  StudentStatus = 1
	StudentDroppedOut StudentStatus = 2
)

// String returns the display name of the status
func (s StudentStatus) String() string {
	switch s {
	case StudentActive:
		return "Active"
	case StudentGraduated:
		return "Graduated"
	case StudentDroppedOut:
		return "DroppedOut"
	default:
		return "Unknown"
	}
}

// Student is the registrar contract's student record. It exists only after
// enrollment; the gateway never constructs one locally. The contract returns
// an all-zero record for callers that are not enrolled, with an empty
// student ID as the sentinel.
type Student struct {
	ID             string        `json:"studentId"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Faculty        string        `json:"faculty"`
	Major          string        `json:"major"`
	Semester       uint8         `json:"semester"`
	Status         StudentStatus `json:"status"`
	ValidityPeriod string        `json:"validityPeriod"`
}

// Enrolled reports whether the record denotes an actual student
func (s *Student) Enrolled() bool {
	return s != nil && s.ID != ""
}
