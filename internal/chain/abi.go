package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI fragments for the three deployed contracts. Only the functions the
// gateway calls are declared; the contracts expose more.

const registrarABI = `[
	{"type":"function","name":"applyForEnrollment","stateMutability":"nonpayable","inputs":[{"name":"studentName","type":"string"},{"name":"facultyName","type":"string"},{"name":"majorName","type":"string"}],"outputs":[]},
	{"type":"function","name":"enrollStudent","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"getStudent","stateMutability":"nonpayable","inputs":[],"outputs":[{"name":"studentId","type":"string"},{"name":"name","type":"string"},{"name":"email","type":"string"},{"name":"faculty","type":"string"},{"name":"major","type":"string"},{"name":"semester","type":"uint8"},{"name":"status","type":"uint8"},{"name":"validityPeriod","type":"string"}]},
	{"type":"function","name":"applications","stateMutability":"view","inputs":[{"name":"","type":"address"},{"name":"","type":"uint256"}],"outputs":[{"name":"applicant","type":"address"},{"name":"name","type":"string"},{"name":"faculty","type":"string"},{"name":"major","type":"string"},{"name":"status","type":"uint8"}]},
	{"type":"function","name":"isOpen","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"hasGraduated","stateMutability":"view","inputs":[{"name":"student","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getGPA","stateMutability":"view","inputs":[{"name":"student","type":"address"}],"outputs":[{"name":"","type":"uint16"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getPendingApplicants","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"listEnrolledStudents","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"updateApplicationStatus","stateMutability":"nonpayable","inputs":[{"name":"applicant","type":"address"},{"name":"majorName","type":"string"},{"name":"status","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"updateStudentGPA","stateMutability":"nonpayable","inputs":[{"name":"student","type":"address"},{"name":"gpa","type":"uint16"}],"outputs":[]},
	{"type":"function","name":"graduateStudent","stateMutability":"nonpayable","inputs":[{"name":"student","type":"address"}],"outputs":[]}
]`

const catalogABI = `[
	{"type":"function","name":"listFaculties","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string[]"}]},
	{"type":"function","name":"listMajors","stateMutability":"view","inputs":[{"name":"facultyName","type":"string"}],"outputs":[{"name":"","type":"string[]"}]},
	{"type":"function","name":"getMajorCost","stateMutability":"view","inputs":[{"name":"facultyName","type":"string"},{"name":"majorName","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"universityName","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}
]`

const certificateABI = `[
	{"type":"function","name":"mintCertificate","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"hasClaimed","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"bool"}]}
]`

func mustParseABI(src string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(src))
	if err != nil {
		panic("chain: invalid embedded ABI: " + err.Error())
	}
	return parsed
}

var (
	registrarParsedABI   = mustParseABI(registrarABI)
	catalogParsedABI     = mustParseABI(catalogABI)
	certificateParsedABI = mustParseABI(certificateABI)
)
