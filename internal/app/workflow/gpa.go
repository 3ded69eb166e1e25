package workflow

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// The ledger stores GPA as an integer in hundredths: 0..400 for 0.00..4.00.
const (
	// MaxGPA is the largest stored GPA value the contract accepts
	MaxGPA uint16 = 400

	// GraduationMinSemester is the semester threshold for graduation
	GraduationMinSemester uint8 = 7
	// GraduationMinGPA is the GPA threshold for graduation (2.00)
	GraduationMinGPA uint16 = 200
)

// EncodeGPA converts a human-entered GPA to the ledger's hundredths
// encoding, rounding to the nearest hundredth. Non-finite or out-of-range
// values are rejected before any submission happens.
func EncodeGPA(display float64) (uint16, error) {
	if math.IsNaN(display) || math.IsInf(display, 0) {
		return 0, apperrors.ErrInvalidGPA
	}
	stored := math.Round(display * 100)
	if stored < 0 || stored > float64(MaxGPA) {
		return 0, apperrors.ErrInvalidGPA
	}
	return uint16(stored), nil
}

// ParseGPA parses a user-entered GPA string and encodes it. Empty input is
// rejected rather than treated as zero.
func ParseGPA(input string) (uint16, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, apperrors.ErrInvalidGPA
	}
	display, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidGPA
	}
	return EncodeGPA(display)
}

// DecodeGPA converts the ledger's hundredths encoding back to a display value.
func DecodeGPA(stored uint16) float64 {
	return float64(stored) / 100
}

// FormatGPA renders a stored GPA with two decimals, e.g. 325 -> "3.25".
func FormatGPA(stored uint16) string {
	return fmt.Sprintf("%.2f", DecodeGPA(stored))
}

// EligibleForGraduation reports whether the thresholds are met. Advisory
// only: the contract performs the authoritative check and its verdict wins
// even when a stale local read disagrees.
func EligibleForGraduation(semester uint8, gpa uint16) bool {
	return semester >= GraduationMinSemester && gpa >= GraduationMinGPA
}
