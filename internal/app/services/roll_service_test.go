package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/repositories"
	"github.com/hmansoor/campusgate/internal/pkg/apperrors"
)

type fakeProgramFinder struct {
	programs map[string]*models.Program
	err      error
}

func (f *fakeProgramFinder) GetActiveByCode(ctx context.Context, code string) (*models.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.programs[code]
	if !ok {
		return nil, repositories.ErrProgramNotFound
	}
	return p, nil
}

type fakeSectionLister struct {
	sections []*models.Section

	gotProgramID int64
	gotYearLevel string
	gotShift     string
}

func (f *fakeSectionLister) ListAvailable(ctx context.Context, programID int64, yearLevel, shift string) ([]*models.Section, error) {
	f.gotProgramID = programID
	f.gotYearLevel = yearLevel
	f.gotShift = shift
	return f.sections, nil
}

func newRollService(sections *fakeSectionLister) *RollService {
	programs := &fakeProgramFinder{programs: map[string]*models.Program{
		"SWT": {ID: 2, Code: "SWT", Name: "Software Technology", IsActive: true},
	}}
	s := NewRollService(programs, sections, zerolog.Nop())
	s.now = func() time.Time {
		return time.Date(2026, time.February, 11, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestParseRoll_MorningStudent(t *testing.T) {
	sections := &fakeSectionLister{sections: []*models.Section{
		{ID: 4, SectionName: "A", Capacity: 40, CurrentStudents: 31},
	}}
	s := newRollService(sections)

	result, err := s.ParseRoll(context.Background(), "25-SWT-01")
	require.NoError(t, err)

	assert.Equal(t, "25-SWT-01", result.RollNumber)
	assert.Equal(t, 2025, result.AdmissionYear)
	assert.Equal(t, "SWT", result.ProgramCode)
	assert.Equal(t, "SWT", result.DisplayProgramCode)
	assert.Equal(t, "Software Technology", result.ProgramName)
	assert.Equal(t, "Morning", result.Shift)
	assert.Equal(t, "01", result.SerialNumber)

	// February 2026, admitted 2025: still in the first academic year
	assert.Equal(t, "1st", result.YearLevel)
	assert.Equal(t, 1, result.YearLevelNumeric)
	assert.False(t, result.IsCompleted)
	assert.Equal(t, 1, result.YearsDifference)

	require.Len(t, result.AvailableSections, 1)
	assert.Equal(t, int64(4), result.AvailableSections[0].ID)
	assert.Equal(t, int64(2), sections.gotProgramID)
	assert.Equal(t, "1st", sections.gotYearLevel)
	assert.Equal(t, "Morning", sections.gotShift)
}

func TestParseRoll_EveningMarkerStripsFromProgramCode(t *testing.T) {
	sections := &fakeSectionLister{}
	s := newRollService(sections)

	result, err := s.ParseRoll(context.Background(), "24-ESWT-01")
	require.NoError(t, err)

	assert.Equal(t, "Evening", result.Shift)
	assert.Equal(t, "SWT", result.ProgramCode)
	assert.Equal(t, "ESWT", result.DisplayProgramCode)
	assert.Equal(t, "Evening", sections.gotShift)
}

func TestParseRoll_CompletedStudent(t *testing.T) {
	sections := &fakeSectionLister{}
	s := newRollService(sections)

	result, err := s.ParseRoll(context.Background(), "22-SWT-01")
	require.NoError(t, err)

	// Admitted 2022, evaluated February 2026: four years elapsed
	assert.Equal(t, "Completed", result.YearLevel)
	assert.True(t, result.IsCompleted)
	assert.Equal(t, 3, result.YearLevelNumeric)
	assert.Equal(t, 4, result.YearsDifference)
	assert.Equal(t, "Completed", sections.gotYearLevel)
}

func TestParseRoll_InvalidFormat(t *testing.T) {
	s := newRollService(&fakeSectionLister{})

	for _, roll := range []string{"2025-SWT-01", "25-swt-01", "25-SWT", "garbage", "25-SWT-1"} {
		_, err := s.ParseRoll(context.Background(), roll)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRollNumber, "roll %q", roll)
	}
}

func TestParseRoll_AdmissionYearOutOfRange(t *testing.T) {
	s := newRollService(&fakeSectionLister{})

	// 2009 is more than ten years before 2026
	_, err := s.ParseRoll(context.Background(), "09-SWT-01")
	require.ErrorIs(t, err, apperrors.ErrAdmissionYearOutOfRange)

	// 2027 is in the future
	_, err = s.ParseRoll(context.Background(), "27-SWT-01")
	require.ErrorIs(t, err, apperrors.ErrAdmissionYearOutOfRange)

	// Boundaries are inclusive
	_, err = s.ParseRoll(context.Background(), "16-SWT-01")
	require.NoError(t, err)
	_, err = s.ParseRoll(context.Background(), "26-SWT-01")
	require.NoError(t, err)
}

func TestParseRoll_UnknownProgram(t *testing.T) {
	s := newRollService(&fakeSectionLister{})

	_, err := s.ParseRoll(context.Background(), "25-CIT-01")
	require.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func TestValidateRoll(t *testing.T) {
	s := newRollService(&fakeSectionLister{})

	result, err := s.ValidateRoll(context.Background(), "25-SWT-01")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.NotNil(t, result.Program)
	assert.Equal(t, "SWT", result.Program.Code)

	result, err = s.ValidateRoll(context.Background(), "not-a-roll")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Nil(t, result.Program)

	result, err = s.ValidateRoll(context.Background(), "25-CIT-01")
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateRoll_LookupFailure(t *testing.T) {
	programs := &fakeProgramFinder{err: errors.New("connection refused")}
	s := NewRollService(programs, &fakeSectionLister{}, zerolog.Nop())

	_, err := s.ValidateRoll(context.Background(), "25-SWT-01")
	require.Error(t, err)
}
