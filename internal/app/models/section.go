package models

// Section is a scheduled cohort grouping: program x year level x shift x name.
// At most one active section exists per composite key.
type Section struct {
	ID              int64  `json:"id"`
	ProgramID       int64  `json:"programId"`
	YearLevel       string `json:"yearLevel"`
	Shift           string `json:"shift"`
	SectionName     string `json:"sectionName"`
	Capacity        int    `json:"capacity"`
	CurrentStudents int    `json:"currentStudents"`
	IsActive        bool   `json:"isActive"`
}
