package workflow

import (
	"strings"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
)

// SameAddress compares two hex addresses case-insensitively. Checksummed,
// lowercase and uppercase renderings of the same address are equal.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// RoleOf derives the caller's role from the connected address and the
// registrar owner address.
func RoleOf(connected, owner string) models.RoleType {
	if owner != "" && SameAddress(connected, owner) {
		return models.RoleOwner
	}
	return models.RoleStudent
}
