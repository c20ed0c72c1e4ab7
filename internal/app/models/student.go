package models

import "time"

// Student is a persisted student record. StudentID is the roll number and
// doubles as the initial username. SectionID is nullable: imports proceed
// without a section assignment when no matching active section exists.
type Student struct {
	ID            int64     `json:"id"`
	StudentID     string    `json:"studentId"`
	RollNumber    string    `json:"rollNumber"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	UserID        *int64    `json:"userId,omitempty"`
	Program       string    `json:"program"`
	Shift         string    `json:"shift"`
	YearLevel     string    `json:"yearLevel"`
	Section       string    `json:"section"`
	SectionID     *int64    `json:"sectionId,omitempty"`
	AdmissionYear int       `json:"admissionYear"`
	RollPrefix    string    `json:"rollPrefix"`
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"createdAt"`
}
