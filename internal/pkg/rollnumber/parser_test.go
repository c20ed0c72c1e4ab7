package rollnumber

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		roll    string
		want    Identity
		wantErr bool
	}{
		{
			name: "morning two digit serial",
			roll: "24-SWT-01",
			want: Identity{RollNumber: "24-SWT-01", AdmissionYear: 2024, ProgramCode: "SWT", Shift: ShiftMorning, Serial: "01"},
		},
		{
			name: "evening marker stripped from program code",
			roll: "24-ESWT-01",
			want: Identity{RollNumber: "24-ESWT-01", AdmissionYear: 2024, ProgramCode: "SWT", Shift: ShiftEvening, Serial: "01"},
		},
		{
			name: "three digit serial",
			roll: "25-SWT-583",
			want: Identity{RollNumber: "25-SWT-583", AdmissionYear: 2025, ProgramCode: "SWT", Shift: ShiftMorning, Serial: "583"},
		},
		{
			name: "evening three digit serial",
			roll: "25-ECIT-103",
			want: Identity{RollNumber: "25-ECIT-103", AdmissionYear: 2025, ProgramCode: "CIT", Shift: ShiftEvening, Serial: "103"},
		},
		{
			name: "long program code",
			roll: "23-ELECTRONIC-12",
			want: Identity{RollNumber: "23-ELECTRONIC-12", AdmissionYear: 2023, ProgramCode: "LECTRONIC", Shift: ShiftEvening, Serial: "12"},
		},
		{
			name: "surrounding whitespace trimmed",
			roll: "  24-CIT-05 ",
			want: Identity{RollNumber: "24-CIT-05", AdmissionYear: 2024, ProgramCode: "CIT", Shift: ShiftMorning, Serial: "05"},
		},
		{name: "four digit year rejected", roll: "2024-SWT-01", wantErr: true},
		{name: "one digit serial rejected", roll: "24-SWT-1", wantErr: true},
		{name: "four digit serial rejected", roll: "24-SWT-0001", wantErr: true},
		{name: "lowercase program rejected", roll: "24-swt-01", wantErr: true},
		{name: "single letter program rejected", roll: "24-S-01", wantErr: true},
		{name: "eleven letter program rejected", roll: "24-ABCDEFGHIJK-01", wantErr: true},
		{name: "missing dashes rejected", roll: "24SWT01", wantErr: true},
		{name: "empty string rejected", roll: "", wantErr: true},
		{name: "trailing garbage rejected", roll: "24-SWT-01x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.roll)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %+v, want error", tt.roll, got)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.roll, err)
				}
				if got != (Identity{}) {
					t.Errorf("Parse(%q) returned partial identity %+v on error", tt.roll, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.roll, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.roll, got, tt.want)
			}
		})
	}
}

func TestParseShiftDetection(t *testing.T) {
	// Evening iff the literal E appears immediately after the year dash.
	for _, roll := range []string{"20-AB-01", "24-SWT-99", "30-CIT-100"} {
		id, err := Parse(roll)
		if err != nil {
			t.Fatalf("Parse(%q): %v", roll, err)
		}
		if id.Shift != ShiftMorning {
			t.Errorf("Parse(%q).Shift = %s, want Morning", roll, id.Shift)
		}
	}
	for _, roll := range []string{"20-EAB-01", "24-ESWT-99", "30-ECIT-100"} {
		id, err := Parse(roll)
		if err != nil {
			t.Fatalf("Parse(%q): %v", roll, err)
		}
		if id.Shift != ShiftEvening {
			t.Errorf("Parse(%q).Shift = %s, want Evening", roll, id.Shift)
		}
	}
}

func TestDisplayProgramCode(t *testing.T) {
	morning, _ := Parse("24-SWT-01")
	if got := morning.DisplayProgramCode(); got != "SWT" {
		t.Errorf("DisplayProgramCode() = %q, want SWT", got)
	}
	evening, _ := Parse("24-ESWT-01")
	if got := evening.DisplayProgramCode(); got != "ESWT" {
		t.Errorf("DisplayProgramCode() = %q, want ESWT", got)
	}
}

func TestIsValidFormat(t *testing.T) {
	if !IsValidFormat("24-SWT-01") || !IsValidFormat("25-ECIT-583") {
		t.Error("IsValidFormat rejected well-formed roll numbers")
	}
	if IsValidFormat("2024-SWT-01") || IsValidFormat("garbage") {
		t.Error("IsValidFormat accepted malformed roll numbers")
	}
}
