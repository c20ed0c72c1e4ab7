package models

// Program is a D.A.E program of study (e.g. SWT, CIT). Reference data: the
// import pipeline only reads programs.
type Program struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
