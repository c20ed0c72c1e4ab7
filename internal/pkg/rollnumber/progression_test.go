package rollnumber

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeYearLevel(t *testing.T) {
	tests := []struct {
		name          string
		admissionYear int
		asOf          time.Time
		wantLevel     string
		wantNumeric   int
		wantCompleted bool
		wantElapsed   int
	}{
		{
			name:          "one year elapsed before september",
			admissionYear: 2023,
			asOf:          date(2024, time.June, 15),
			wantLevel:     "1st",
			wantNumeric:   1,
			wantElapsed:   1,
		},
		{
			name:          "one year elapsed after september cutover",
			admissionYear: 2023,
			asOf:          date(2024, time.October, 1),
			wantLevel:     "2nd",
			wantNumeric:   2,
			wantElapsed:   1,
		},
		{
			name:          "exactly september advances the level",
			admissionYear: 2023,
			asOf:          date(2024, time.September, 1),
			wantLevel:     "2nd",
			wantNumeric:   2,
			wantElapsed:   1,
		},
		{
			name:          "freshly admitted before september clamps to first year",
			admissionYear: 2024,
			asOf:          date(2024, time.March, 10),
			wantLevel:     "1st",
			wantNumeric:   1,
			wantElapsed:   0,
		},
		{
			name:          "admission year in the cutover window counts as first year",
			admissionYear: 2024,
			asOf:          date(2024, time.November, 20),
			wantLevel:     "1st",
			wantNumeric:   1,
			wantElapsed:   0,
		},
		{
			name:          "third year student",
			admissionYear: 2022,
			asOf:          date(2024, time.December, 1),
			wantLevel:     "3rd",
			wantNumeric:   3,
			wantElapsed:   2,
		},
		{
			name:          "completed after three elapsed years",
			admissionYear: 2021,
			asOf:          date(2024, time.June, 1),
			wantLevel:     YearLevelCompleted,
			wantNumeric:   3,
			wantCompleted: true,
			wantElapsed:   3,
		},
		{
			name:          "completed long ago",
			admissionYear: 2020,
			asOf:          date(2024, time.October, 1),
			wantLevel:     YearLevelCompleted,
			wantNumeric:   3,
			wantCompleted: true,
			wantElapsed:   4,
		},
		{
			name:          "future admission year clamps to first year",
			admissionYear: 2026,
			asOf:          date(2024, time.June, 1),
			wantLevel:     "1st",
			wantNumeric:   1,
			wantElapsed:   -2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeYearLevel(tt.admissionYear, tt.asOf)
			if got.YearLevel != tt.wantLevel {
				t.Errorf("YearLevel = %q, want %q", got.YearLevel, tt.wantLevel)
			}
			if got.LevelNumeric != tt.wantNumeric {
				t.Errorf("LevelNumeric = %d, want %d", got.LevelNumeric, tt.wantNumeric)
			}
			if got.IsCompleted != tt.wantCompleted {
				t.Errorf("IsCompleted = %v, want %v", got.IsCompleted, tt.wantCompleted)
			}
			if got.YearsElapsed != tt.wantElapsed {
				t.Errorf("YearsElapsed = %d, want %d", got.YearsElapsed, tt.wantElapsed)
			}
		})
	}
}

func TestComputeYearLevelDeterminism(t *testing.T) {
	asOf := date(2025, time.February, 3)
	first := ComputeYearLevel(2023, asOf)
	for i := 0; i < 10; i++ {
		if got := ComputeYearLevel(2023, asOf); got != first {
			t.Fatalf("ComputeYearLevel not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestYearLevelAndShiftValidators(t *testing.T) {
	for _, lvl := range ValidYearLevels {
		if !IsValidYearLevel(lvl) {
			t.Errorf("IsValidYearLevel(%q) = false", lvl)
		}
	}
	if IsValidYearLevel("4th") || IsValidYearLevel("") || IsValidYearLevel("Completed") {
		t.Error("IsValidYearLevel accepted an out-of-range level")
	}
	if !IsValidShift("Morning") || !IsValidShift("Evening") {
		t.Error("IsValidShift rejected a valid shift")
	}
	if IsValidShift("morning") || IsValidShift("Night") {
		t.Error("IsValidShift accepted an invalid shift")
	}
}
