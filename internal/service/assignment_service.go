package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/office-space-api/internal/dto"
	"github.com/noah-isme/office-space-api/internal/models"
	"github.com/noah-isme/office-space-api/internal/occupancy"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
)

type assignmentStore interface {
	Insert(ctx context.Context, a *models.Assignment) (int64, error)
	List(ctx context.Context) ([]models.Assignment, error)
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	Update(ctx context.Context, a *models.Assignment) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AssignmentService applies the occupancy write-path rules on top of the
// assignment store.
type AssignmentService struct {
	repo      assignmentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService builds an AssignmentService with sane defaults.
func NewAssignmentService(repo assignmentStore, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, validator: validate, logger: logger}
}

// Create adds an occupant to an office. A present end date forces temporary
// status even against an explicit temporary=false.
func (s *AssignmentService) Create(ctx context.Context, officeID string, req dto.CreateOccupantRequest) (*dto.OccupantView, error) {
	officeID = strings.TrimSpace(officeID)
	if officeID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing 'office_id' in URL")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing 'name' field")
	}
	fullName := strings.TrimSpace(req.Name)
	if fullName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing 'name' field")
	}

	res := occupancy.ResolveTemporary(req.Temporary, req.StartDate, req.EndDate, occupancy.ModeCreate)
	for _, w := range res.Warnings {
		s.logger.Warn("date warning on create", zap.String("office_id", officeID), zap.String("warning", w))
	}

	assignment := &models.Assignment{
		OfficeID:    officeID,
		FullName:    fullName,
		StartDate:   res.StartDate,
		EndDate:     res.EndDate,
		IsTemporary: res.Temporary,
	}
	if req.AppointmentType != nil {
		if appt := strings.TrimSpace(*req.AppointmentType); appt != "" {
			assignment.AppointmentType = &appt
		}
	}

	id, err := s.repo.Insert(ctx, assignment)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, appErrors.Clone(appErrors.ErrStore, "created occupant could not be reloaded")
	}
	view := dto.NewOccupantView(created)
	return &view, nil
}

// Update replaces the mutable fields of an occupant. Unlike creation, an
// explicit temporary=false is honored here and any supplied dates are
// discarded.
func (s *AssignmentService) Update(ctx context.Context, id int64, req dto.UpdateOccupantRequest) (*dto.OccupantView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing 'name' field")
	}
	fullName := strings.TrimSpace(req.Name)
	if fullName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing 'name' field")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "occupant not found")
	}

	res := occupancy.ResolveTemporary(req.Temporary, req.StartDate, req.EndDate, occupancy.ModeUpdate)
	for _, w := range res.Warnings {
		s.logger.Warn("date warning on update", zap.Int64("occupant_id", id), zap.String("warning", w))
	}

	existing.FullName = fullName
	existing.StartDate = res.StartDate
	existing.EndDate = res.EndDate
	existing.IsTemporary = res.Temporary

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "occupant not found")
	}

	reloaded, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reloaded == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "occupant not found")
	}
	view := dto.NewOccupantView(reloaded)
	return &view, nil
}

// Delete removes an occupant permanently. Deleting the same id twice yields
// NotFound the second time.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "occupant not found")
	}
	return nil
}

// ListGroupedByOffice returns every assignment grouped by office. Offices sort
// ascending and occupants keep insertion order, both inherited from the store
// ordering.
func (s *AssignmentService) ListGroupedByOffice(ctx context.Context) (dto.OfficesResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make(dto.OfficesResponse, len(items))
	for i := range items {
		item := &items[i]
		group, ok := resp[item.OfficeID]
		if !ok {
			group = &dto.OfficeGroup{Occupants: []dto.OccupantView{}}
			resp[item.OfficeID] = group
		}
		group.Occupants = append(group.Occupants, dto.NewOccupantView(item))
	}
	return resp, nil
}
