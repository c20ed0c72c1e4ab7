package dto

// SectionOption is an open section a parsed student could be placed in
type SectionOption struct {
	ID              int64  `json:"id" example:"4"`
	SectionName     string `json:"sectionName" example:"A"`
	Capacity        int    `json:"capacity" example:"40"`
	CurrentStudents int    `json:"currentStudents" example:"31"`
}

// ParseRollResponse is the full decoding of a roll number: identity,
// program details, academic standing and placement options.
type ParseRollResponse struct {
	RollNumber         string          `json:"roll_number" example:"24-ESWT-01"`
	AdmissionYear      int             `json:"admission_year" example:"2024"`
	ProgramID          int64           `json:"program_id" example:"2"`
	ProgramCode        string          `json:"program_code" example:"SWT"`
	DisplayProgramCode string          `json:"display_program_code" example:"ESWT"`
	ProgramName        string          `json:"program_name" example:"Software Technology"`
	Shift              string          `json:"shift" example:"Evening"`
	SerialNumber       string          `json:"serial_number" example:"01"`
	YearLevel          string          `json:"year_level" example:"2nd"`
	YearLevelNumeric   int             `json:"year_level_numeric" example:"2"`
	IsCompleted        bool            `json:"is_completed" example:"false"`
	YearsDifference    int             `json:"years_difference" example:"1"`
	AvailableSections  []SectionOption `json:"available_sections"`
	ParsedAt           string          `json:"parsed_at" example:"2026-02-11 12:01:05"`
}

// ValidateRollResponse reports whether a roll number is well-formed and
// names a known active program
type ValidateRollResponse struct {
	Valid   bool             `json:"valid" example:"true"`
	Program *ProgramResponse `json:"program,omitempty"`
}
