package dto

// UniversityResponse is the catalog's display name
type UniversityResponse struct {
	Name string `json:"name" example:"UniReg"`
}

// FacultyListResponse is the ordered faculty list
type FacultyListResponse struct {
	Faculties []string `json:"faculties"`
}

// MajorListResponse is the ordered major list for one faculty
type MajorListResponse struct {
	Faculty string   `json:"faculty"`
	Majors  []string `json:"majors"`
}

// MajorCostResponse is the enrollment fee for a (faculty, major) pair.
// The cost is a decimal string in the smallest currency unit, since fees
// exceed what fits in a float or int64.
type MajorCostResponse struct {
	Faculty string `json:"faculty"`
	Major   string `json:"major"`
	Cost    string `json:"cost" example:"500000000000000000"`
}
