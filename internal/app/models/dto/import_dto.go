package dto

// CandidateRow is one raw student record submitted for import. All fields
// arrive as strings; validation normalizes and cross-checks them against
// reference data.
type CandidateRow struct {
	StudentID string `json:"student_id" example:"25-SWT-01"`
	Name      string `json:"name" example:"John Doe"`
	Email     string `json:"email" example:"john@example.com"`
	Phone     string `json:"phone,omitempty" example:"+923001234567"`
	Program   string `json:"program" example:"SWT"`
	Shift     string `json:"shift" example:"Morning" enums:"Morning,Evening"`
	YearLevel string `json:"year_level" example:"1st" enums:"1st,2nd,3rd"`
	Section   string `json:"section" example:"A"`
}

// ImportStudentsRequest is the body of the bulk import endpoint
type ImportStudentsRequest struct {
	Data []CandidateRow `json:"data" binding:"required"`
}

// RowError carries all validation errors for one rejected row. Row numbers
// are 1-based and match input order; row 0 flags a batch-wide failure.
type RowError struct {
	Row       int      `json:"row" example:"3"`
	StudentID string   `json:"student_id" example:"25-SWT-03"`
	Errors    []string `json:"errors"`
}

// ImportOutcome is the per-row persistence result. Password is the initial
// plaintext credential, returned once for distribution to the student; it is
// never stored or logged unhashed.
type ImportOutcome struct {
	Row       int      `json:"row" example:"1"`
	Success   bool     `json:"success" example:"true"`
	StudentID string   `json:"student_id" example:"25-SWT-01"`
	Name      string   `json:"name,omitempty" example:"John Doe"`
	Email     string   `json:"email,omitempty" example:"john@example.com"`
	Password  string   `json:"password,omitempty" example:"25-SWT-01"`
	Error     string   `json:"error,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ImportResult aggregates a whole batch: every input row appears in exactly
// one of Success or Errors, and len(Success)+len(Errors) == Total.
type ImportResult struct {
	Success []ImportOutcome `json:"success"`
	Errors  []ImportOutcome `json:"errors"`
	Total   int             `json:"total" example:"25"`
}

// ImportLogResponse is one audit-trail entry of a past import
type ImportLogResponse struct {
	ID                int64       `json:"id" example:"12"`
	BatchID           string      `json:"batchId" example:"0d4cf04a-9f51-4f2e-9b1c-6a90ab45e2a1"`
	ImportType        string      `json:"importType" example:"student_import"`
	TotalRecords      int         `json:"totalRecords" example:"25"`
	SuccessfulRecords int         `json:"successfulRecords" example:"23"`
	FailedRecords     int         `json:"failedRecords" example:"2"`
	ErrorDetails      interface{} `json:"errorDetails,omitempty"`
	CreatedAt         string      `json:"createdAt" example:"2026-02-11T12:01:05Z"`
}
