package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/integrity"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// SupervisorInput carries the fields of a new supervisor.
type SupervisorInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required,max=200"`
	Shift        string `json:"shift" validate:"required,max=100"`
}

// SupervisorPatch carries the fields to change; nil fields stay untouched.
type SupervisorPatch struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	FieldOfStudy *string `json:"fieldOfStudy" validate:"omitempty,min=1,max=200"`
	Shift        *string `json:"shift" validate:"omitempty,min=1,max=100"`
}

func (p SupervisorPatch) empty() bool {
	return p.Name == nil && p.FieldOfStudy == nil && p.Shift == nil
}

// SupervisorService manages supervisors.
type SupervisorService struct {
	stores Stores
	events events.Dispatcher
	logger *zap.Logger
}

// NewSupervisorService constructs the service.
func NewSupervisorService(deps Dependencies) *SupervisorService {
	return &SupervisorService{stores: deps.Stores, events: deps.Events, logger: deps.logger()}
}

func (s *SupervisorService) List(ctx context.Context) ([]domain.Supervisor, error) {
	supervisors, err := s.stores.Supervisors.Find(ctx, nil)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return supervisors, nil
}

func (s *SupervisorService) GetByID(ctx context.Context, id string) (*domain.Supervisor, error) {
	return mustFindByID(ctx, s.stores.Supervisors, "supervisor", id)
}

// Create adds a supervisor with a unique name.
func (s *SupervisorService) Create(ctx context.Context, in SupervisorInput) (*domain.Supervisor, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	holder, err := findOptional(ctx, s.stores.Supervisors, repository.Filter{"name": in.Name})
	if err != nil {
		return nil, err
	}
	if err := integrity.SupervisorCreate(holder); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sup := domain.Supervisor{
		ID:           uuid.NewString(),
		Name:         in.Name,
		FieldOfStudy: in.FieldOfStudy,
		Shift:        in.Shift,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.stores.Supervisors.Insert(ctx, sup.ID, sup); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventSupervisorCreated, events.EntitySupervisor, sup.ID, sup))
	return &sup, nil
}

// Update changes supervisor fields. A rename re-points managed departments at the same id.
func (s *SupervisorService) Update(ctx context.Context, id string, patch SupervisorPatch) (*domain.Supervisor, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	sup, err := mustFindByID(ctx, s.stores.Supervisors, "supervisor", id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return sup, nil
	}

	changes := repository.Patch{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		holder, err := findOptional(ctx, s.stores.Supervisors, repository.Filter{"name": *patch.Name})
		if err != nil {
			return nil, err
		}
		if err := integrity.SupervisorRename(id, holder); err != nil {
			return nil, err
		}
		changes["name"] = *patch.Name
	}
	if patch.FieldOfStudy != nil {
		changes["fieldOfStudy"] = *patch.FieldOfStudy
	}
	if patch.Shift != nil {
		changes["shift"] = *patch.Shift
	}

	if _, err := s.stores.Supervisors.UpdateMany(ctx, repository.ByID(id), changes); err != nil {
		return nil, apperrors.MapError(err)
	}

	if patch.Name != nil {
		matched, err := s.stores.Departments.UpdateMany(ctx, repository.Filter{"supervisor": id}, repository.Patch{"supervisor": id})
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		s.logger.Debug("refreshed department supervisor references", zap.String("supervisor_id", id), zap.Int64("departments", matched))
	}

	updated, err := mustFindByID(ctx, s.stores.Supervisors, "supervisor", id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.NewEvent(events.EventSupervisorUpdated, events.EntitySupervisor, id, updated))
	return updated, nil
}

// Delete removes a supervisor that manages no department.
func (s *SupervisorService) Delete(ctx context.Context, id string) (*domain.Deletion, error) {
	sup, err := mustFindByID(ctx, s.stores.Supervisors, "supervisor", id)
	if err != nil {
		return nil, err
	}
	departments, err := s.stores.Departments.Count(ctx, repository.Filter{"supervisor": id})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := integrity.SupervisorDelete(sup, departments); err != nil {
		s.logger.Info("supervisor delete blocked", zap.String("supervisor_id", id), zap.Int64("departments", departments))
		return nil, err
	}
	if err := deleteByID(ctx, s.stores.Supervisors, "supervisor", id); err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventSupervisorDeleted, events.EntitySupervisor, id, nil))
	return &domain.Deletion{ID: id, Message: "supervisor deleted successfully"}, nil
}
