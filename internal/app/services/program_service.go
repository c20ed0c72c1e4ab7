package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/repositories"
	"github.com/hmansoor/campusgate/internal/pkg/apperrors"
)

type programCatalog interface {
	ListActive(ctx context.Context) ([]*models.Program, error)
	GetByID(ctx context.Context, id int64) (*models.Program, error)
}

type sectionLister interface {
	ListByProgramID(ctx context.Context, programID int64) ([]*models.Section, error)
}

// ProgramService serves the program and section catalog
type ProgramService struct {
	programs programCatalog
	sections sectionLister
}

// NewProgramService creates a new program service
func NewProgramService(programs programCatalog, sections sectionLister) *ProgramService {
	return &ProgramService{
		programs: programs,
		sections: sections,
	}
}

// ListPrograms returns all active programs
func (s *ProgramService) ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.programs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}

	responses := make([]dto.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		responses = append(responses, dto.ProgramResponse{
			ID:   p.ID,
			Code: p.Code,
			Name: p.Name,
		})
	}

	return responses, nil
}

// ListProgramSections returns the active sections of one program
func (s *ProgramService) ListProgramSections(ctx context.Context, programID int64) ([]dto.SectionResponse, error) {
	if _, err := s.programs.GetByID(ctx, programID); err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrProgramNotFound,
				fmt.Sprintf("Program with ID %d not found", programID))
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	sections, err := s.sections.ListByProgramID(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}

	responses := make([]dto.SectionResponse, 0, len(sections))
	for _, sec := range sections {
		responses = append(responses, dto.SectionResponse{
			ID:              sec.ID,
			ProgramID:       sec.ProgramID,
			YearLevel:       sec.YearLevel,
			Shift:           sec.Shift,
			SectionName:     sec.SectionName,
			Capacity:        sec.Capacity,
			CurrentStudents: sec.CurrentStudents,
		})
	}

	return responses, nil
}
