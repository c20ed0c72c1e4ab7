package dto

// ProgramResponse is the public view of a program
type ProgramResponse struct {
	ID   int64  `json:"id" example:"2"`
	Code string `json:"code" example:"SWT"`
	Name string `json:"name" example:"Software Technology"`
}

// SectionResponse is the public view of a section
type SectionResponse struct {
	ID              int64  `json:"id" example:"4"`
	ProgramID       int64  `json:"programId" example:"2"`
	YearLevel       string `json:"yearLevel" example:"1st"`
	Shift           string `json:"shift" example:"Morning"`
	SectionName     string `json:"sectionName" example:"A"`
	Capacity        int    `json:"capacity" example:"40"`
	CurrentStudents int    `json:"currentStudents" example:"31"`
}
