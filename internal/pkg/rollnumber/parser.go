// Package rollnumber parses D.A.E roll numbers and derives the academic
// standing they encode. Roll numbers follow the format YY-[E]PROGRAM-NN:
// a 2-digit admission year, an optional E marking the Evening shift, a
// 2-10 letter program code and a 2-or-3 digit serial number.
// Examples: 24-SWT-01, 24-ESWT-01, 25-CIT-583.
package rollnumber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Shift identifies the cohort a student attends.
type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
)

// ExpectedFormat is the human-readable grammar shown in parse errors.
const ExpectedFormat = "YY-PROGRAM-NN (e.g., 24-SWT-01, 25-SWT-583) or YY-EPROGRAM-NN (e.g., 24-ESWT-01)"

// rollPattern captures year, program code (without the E shift marker) and serial.
var rollPattern = regexp.MustCompile(`^(\d{2})-E?([A-Z]{2,10})-(\d{2,3})$`)

// Identity is the structured content of a roll number.
type Identity struct {
	RollNumber    string `json:"rollNumber"`
	AdmissionYear int    `json:"admissionYear"`
	ProgramCode   string `json:"programCode"`
	Shift         Shift  `json:"shift"`
	Serial        string `json:"serial"`
}

// DisplayProgramCode returns the program code as written on the roll number,
// with the E prefix restored for Evening students.
func (i Identity) DisplayProgramCode() string {
	if i.Shift == ShiftEvening {
		return "E" + i.ProgramCode
	}
	return i.ProgramCode
}

// ParseError reports a roll number that does not match the grammar.
type ParseError struct {
	RollNumber string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed roll number %q, expected format: YY-PROGRAM-NN or YY-EPROGRAM-NN", e.RollNumber)
}

// Parse decodes a roll number into its Identity. Parsing is all-or-nothing:
// any deviation from the grammar returns a *ParseError and a zero Identity.
// The 2-digit year is expanded into the 2000s; callers that care about the
// admission-year window apply their own bounds check.
func Parse(rollNumber string) (Identity, error) {
	rollNumber = strings.TrimSpace(rollNumber)

	matches := rollPattern.FindStringSubmatch(rollNumber)
	if matches == nil {
		return Identity{}, &ParseError{RollNumber: rollNumber}
	}

	yearPart, programPart, serialPart := matches[1], matches[2], matches[3]

	// The shift marker sits between the year dash and the program code, so
	// the raw string contains "-E" exactly when the cohort is Evening.
	shift := ShiftMorning
	if strings.HasPrefix(rollNumber[3:], "E") {
		shift = ShiftEvening
	}

	yy, err := strconv.Atoi(yearPart)
	if err != nil {
		// Unreachable given the pattern, kept for safety.
		return Identity{}, &ParseError{RollNumber: rollNumber}
	}

	return Identity{
		RollNumber:    rollNumber,
		AdmissionYear: 2000 + yy,
		ProgramCode:   programPart,
		Shift:         shift,
		Serial:        serialPart,
	}, nil
}

// IsValidFormat reports whether a string matches the roll number grammar
// without building an Identity.
func IsValidFormat(rollNumber string) bool {
	return rollPattern.MatchString(strings.TrimSpace(rollNumber))
}
