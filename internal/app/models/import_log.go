package models

import "time"

// Import types recorded in import_logs
const (
	ImportTypeStudent = "student_import"
)

// ImportLog is an append-only audit record, one per batch import call.
// ErrorDetails holds the per-row validation/persistence errors as JSON.
type ImportLog struct {
	ID                int64     `json:"id"`
	BatchID           string    `json:"batchId"`
	ImportType        string    `json:"importType"`
	TotalRecords      int       `json:"totalRecords"`
	SuccessfulRecords int       `json:"successfulRecords"`
	FailedRecords     int       `json:"failedRecords"`
	ErrorDetails      []byte    `json:"errorDetails,omitempty" swaggertype:"string"`
	CreatedAt         time.Time `json:"createdAt"`
}
