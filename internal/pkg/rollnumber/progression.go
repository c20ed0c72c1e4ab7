package rollnumber

import "time"

// ProgramLengthYears is the fixed duration of a D.A.E program.
const ProgramLengthYears = 3

// YearLevelCompleted is the display level for students past the program length.
const YearLevelCompleted = "Completed"

// academicYearCutoverMonth is when the intake year rolls forward: from
// September on, students count as having advanced to the next academic year.
const academicYearCutoverMonth = time.September

// Progression is a student's academic standing derived from the admission
// year and an evaluation date.
type Progression struct {
	YearLevel    string `json:"yearLevel"`
	LevelNumeric int    `json:"yearLevelNumeric"`
	IsCompleted  bool   `json:"isCompleted"`
	YearsElapsed int    `json:"yearsElapsed"`
}

// ComputeYearLevel derives the current year level for a student admitted in
// admissionYear, evaluated at asOf. The result is a pure function of its two
// inputs: no clock, no hidden state.
func ComputeYearLevel(admissionYear int, asOf time.Time) Progression {
	yearsElapsed := asOf.Year() - admissionYear

	rawLevel := yearsElapsed
	if asOf.Month() >= academicYearCutoverMonth {
		rawLevel = yearsElapsed + 1
	}

	// Clamp so out-of-window admission years never yield level 0 or level >3.
	if rawLevel < 1 {
		rawLevel = 1
	}
	if rawLevel > ProgramLengthYears {
		rawLevel = ProgramLengthYears
	}

	completed := yearsElapsed >= ProgramLengthYears

	level := ordinalYearLevel(rawLevel)
	if completed {
		level = YearLevelCompleted
	}

	return Progression{
		YearLevel:    level,
		LevelNumeric: rawLevel,
		IsCompleted:  completed,
		YearsElapsed: yearsElapsed,
	}
}

func ordinalYearLevel(level int) string {
	switch level {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return "1st"
	}
}

// ValidYearLevels are the year level values accepted on student records.
var ValidYearLevels = []string{"1st", "2nd", "3rd"}

// IsValidYearLevel reports whether s is an accepted year level value.
func IsValidYearLevel(s string) bool {
	for _, lvl := range ValidYearLevels {
		if s == lvl {
			return true
		}
	}
	return false
}

// IsValidShift reports whether s is a known shift name.
func IsValidShift(s string) bool {
	return s == string(ShiftMorning) || s == string(ShiftEvening)
}
