package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/pkg/helpers"
)

type studentLister interface {
	List(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error)
}

// StudentService serves student listing and lookups
type StudentService struct {
	students studentLister
}

// NewStudentService creates a new student service
func NewStudentService(students studentLister) *StudentService {
	return &StudentService{
		students: students,
	}
}

// ListStudents returns a filtered page of students with pagination metadata
func (s *StudentService) ListStudents(ctx context.Context, filter dto.StudentFilter, page, size int) (*dto.PaginatedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := s.students.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, st := range students {
		items = append(items, dto.StudentResponse{
			ID:            st.ID,
			StudentID:     st.StudentID,
			Name:          st.Name,
			Email:         st.Email,
			Phone:         st.Phone,
			Program:       st.Program,
			Shift:         st.Shift,
			YearLevel:     st.YearLevel,
			Section:       st.Section,
			SectionID:     st.SectionID,
			AdmissionYear: st.AdmissionYear,
			CreatedAt:     st.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}
