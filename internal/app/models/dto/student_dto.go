package dto

// StudentFilter carries the optional list filters for the student listing
type StudentFilter struct {
	Program string `form:"program"`
	Shift   string `form:"shift"`
	Year    string `form:"year"`
	Section string `form:"section"`
	Search  string `form:"search"`
}

// StudentResponse is the list/detail view of a student
type StudentResponse struct {
	ID            int64  `json:"id" example:"7"`
	StudentID     string `json:"studentId" example:"25-SWT-01"`
	Name          string `json:"name" example:"John Doe"`
	Email         string `json:"email" example:"john@example.com"`
	Phone         string `json:"phone,omitempty" example:"+923001234567"`
	Program       string `json:"program" example:"SWT"`
	Shift         string `json:"shift" example:"Morning"`
	YearLevel     string `json:"yearLevel" example:"1st"`
	Section       string `json:"section" example:"A"`
	SectionID     *int64 `json:"sectionId,omitempty" example:"4"`
	AdmissionYear int    `json:"admissionYear" example:"2025"`
	CreatedAt     string `json:"createdAt" example:"2026-02-11T12:01:05Z"`
}
