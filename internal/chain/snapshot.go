package chain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
)

// Snapshot is a point-in-time aggregation of the per-identity read surface.
// Fields are fetched independently and any of them may fail; a failed field
// stays nil ("unknown") and is listed in Missing. Consumers must tolerate
// partially populated snapshots, since the ledger gives no cross-field
// transaction guarantee.
type Snapshot struct {
	Address common.Address `json:"address"`

	Owner              *common.Address     `json:"owner,omitempty"`
	EnrollmentOpen     *bool               `json:"enrollmentOpen,omitempty"`
	Application        *models.Application `json:"application,omitempty"`
	Student            *models.Student     `json:"student,omitempty"`
	GPA                *uint16             `json:"gpa,omitempty"`
	Graduated          *bool               `json:"graduated,omitempty"`
	CertificateClaimed *bool               `json:"certificateClaimed,omitempty"`
	MajorCost          *big.Int            `json:"majorCost,omitempty"`

	FetchedAt time.Time `json:"fetchedAt"`
	Missing   []string  `json:"missing,omitempty"`
}

// HasApplication reports whether a real application is on record. False for
// both "known empty" and "unknown"; use Application == nil to distinguish.
func (s *Snapshot) HasApplication() bool {
	return s.Application.Exists()
}

// EnrolledStudent reports whether a student record exists. False for both
// "known absent" and "unknown"; use Student == nil to distinguish.
func (s *Snapshot) EnrolledStudent() bool {
	return s.Student.Enrolled()
}

// IsOwner reports whether the snapshot identity is the registrar owner.
// Address comparison is byte-level, so hex letter case never matters.
func (s *Snapshot) IsOwner() bool {
	return s.Owner != nil && *s.Owner == s.Address
}
