package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/repositories"
	"github.com/hmansoor/campusgate/internal/pkg/apperrors"
	"github.com/hmansoor/campusgate/internal/pkg/rollnumber"
)

// admissionYearWindow is how many years back an admission year may lie and
// still be considered plausible.
const admissionYearWindow = 10

type sectionsByProgram interface {
	ListAvailable(ctx context.Context, programID int64, yearLevel, shift string) ([]*models.Section, error)
}

type programFinder interface {
	GetActiveByCode(ctx context.Context, code string) (*models.Program, error)
}

// RollService decodes roll numbers into full student identities: admission
// year, program, shift, academic standing and placement options.
type RollService struct {
	programs programFinder
	sections sectionsByProgram
	now      func() time.Time
	logger   zerolog.Logger
}

// NewRollService creates a new roll service
func NewRollService(programs programFinder, sections sectionsByProgram, logger zerolog.Logger) *RollService {
	return &RollService{
		programs: programs,
		sections: sections,
		now:      time.Now,
		logger:   logger,
	}
}

// ParseRoll decodes a roll number against the active program catalog and the
// current date. Unknown programs and out-of-window admission years are
// rejected; format errors carry the expected grammar.
func (s *RollService) ParseRoll(ctx context.Context, rollNumber string) (*dto.ParseRollResponse, error) {
	identity, err := rollnumber.Parse(rollNumber)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidRollNumber,
			fmt.Sprintf("Invalid roll number format. Expected: %s (e.g., 25-SWT-01 or 25-ESWT-01 for evening)", rollnumber.ExpectedFormat))
	}

	now := s.now()
	currentYear := now.Year()
	if identity.AdmissionYear < currentYear-admissionYearWindow || identity.AdmissionYear > currentYear {
		return nil, apperrors.NewCustomError(apperrors.ErrAdmissionYearOutOfRange,
			fmt.Sprintf("Admission year %d is outside the plausible range (%d-%d)",
				identity.AdmissionYear, currentYear-admissionYearWindow, currentYear))
	}

	program, err := s.programs.GetActiveByCode(ctx, identity.ProgramCode)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrProgramNotFound,
				fmt.Sprintf("Unknown program code: %s", identity.ProgramCode))
		}
		return nil, fmt.Errorf("error resolving program: %w", err)
	}

	progression := rollnumber.ComputeYearLevel(identity.AdmissionYear, now)

	sections, err := s.sections.ListAvailable(ctx, program.ID, progression.YearLevel, string(identity.Shift))
	if err != nil {
		s.logger.Warn().Err(err).Str("rollNumber", identity.RollNumber).Msg("Could not list placement options")
		sections = nil
	}

	options := make([]dto.SectionOption, 0, len(sections))
	for _, sec := range sections {
		options = append(options, dto.SectionOption{
			ID:              sec.ID,
			SectionName:     sec.SectionName,
			Capacity:        sec.Capacity,
			CurrentStudents: sec.CurrentStudents,
		})
	}

	return &dto.ParseRollResponse{
		RollNumber:         identity.RollNumber,
		AdmissionYear:      identity.AdmissionYear,
		ProgramID:          program.ID,
		ProgramCode:        program.Code,
		DisplayProgramCode: identity.DisplayProgramCode(),
		ProgramName:        program.Name,
		Shift:              string(identity.Shift),
		SerialNumber:       identity.Serial,
		YearLevel:          progression.YearLevel,
		YearLevelNumeric:   progression.LevelNumeric,
		IsCompleted:        progression.IsCompleted,
		YearsDifference:    progression.YearsElapsed,
		AvailableSections:  options,
		ParsedAt:           now.Format("2006-01-02 15:04:05"),
	}, nil
}

// ValidateRoll is the lightweight check behind form-field validation: grammar
// plus program existence, with no progression or section work. Malformed
// input and unknown programs are reported as invalid, not as errors.
func (s *RollService) ValidateRoll(ctx context.Context, rollNumber string) (*dto.ValidateRollResponse, error) {
	identity, err := rollnumber.Parse(rollNumber)
	if err != nil {
		return &dto.ValidateRollResponse{Valid: false}, nil
	}

	program, err := s.programs.GetActiveByCode(ctx, identity.ProgramCode)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return &dto.ValidateRollResponse{Valid: false}, nil
		}
		return nil, fmt.Errorf("error resolving program: %w", err)
	}

	return &dto.ValidateRollResponse{
		Valid: true,
		Program: &dto.ProgramResponse{
			ID:   program.ID,
			Code: program.Code,
			Name: program.Name,
		},
	}, nil
}
