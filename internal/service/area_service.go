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

// AreaInput carries the fields of a new area.
type AreaInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Building string `json:"building" validate:"required,max=200"`
}

// AreaPatch carries the fields to change; nil fields stay untouched.
type AreaPatch struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Building *string `json:"building" validate:"omitempty,min=1,max=200"`
}

func (p AreaPatch) empty() bool {
	return p.Name == nil && p.Building == nil
}

// AreaService manages areas.
type AreaService struct {
	stores Stores
	events events.Dispatcher
	logger *zap.Logger
}

// NewAreaService constructs the service.
func NewAreaService(deps Dependencies) *AreaService {
	return &AreaService{stores: deps.Stores, events: deps.Events, logger: deps.logger()}
}

// List returns every area in creation order.
func (s *AreaService) List(ctx context.Context) ([]domain.Area, error) {
	areas, err := s.stores.Areas.Find(ctx, nil)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return areas, nil
}

// GetByID fetches an area.
func (s *AreaService) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	return mustFindByID(ctx, s.stores.Areas, "area", id)
}

// Create adds an area with a unique name.
func (s *AreaService) Create(ctx context.Context, in AreaInput) (*domain.Area, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	holder, err := findOptional(ctx, s.stores.Areas, repository.Filter{"name": in.Name})
	if err != nil {
		return nil, err
	}
	if err := integrity.AreaCreate(holder); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	area := domain.Area{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Building:  in.Building,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stores.Areas.Insert(ctx, area.ID, area); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventAreaCreated, events.EntityArea, area.ID, area))
	return &area, nil
}

// Update changes name and building. A rename re-points the departments of the area at the same id.
func (s *AreaService) Update(ctx context.Context, id string, patch AreaPatch) (*domain.Area, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	area, err := mustFindByID(ctx, s.stores.Areas, "area", id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return area, nil
	}

	changes := repository.Patch{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		holder, err := findOptional(ctx, s.stores.Areas, repository.Filter{"name": *patch.Name})
		if err != nil {
			return nil, err
		}
		if err := integrity.AreaRename(id, holder); err != nil {
			return nil, err
		}
		changes["name"] = *patch.Name
	}
	if patch.Building != nil {
		changes["building"] = *patch.Building
	}

	if _, err := s.stores.Areas.UpdateMany(ctx, repository.ByID(id), changes); err != nil {
		return nil, apperrors.MapError(err)
	}

	if patch.Name != nil {
		matched, err := s.stores.Departments.UpdateMany(ctx, repository.Filter{"area": id}, repository.Patch{"area": id})
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		s.logger.Debug("refreshed department area references", zap.String("area_id", id), zap.Int64("departments", matched))
	}

	updated, err := mustFindByID(ctx, s.stores.Areas, "area", id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.NewEvent(events.EventAreaUpdated, events.EntityArea, id, updated))
	return updated, nil
}

// Delete removes an area no department references.
func (s *AreaService) Delete(ctx context.Context, id string) (*domain.Deletion, error) {
	area, err := mustFindByID(ctx, s.stores.Areas, "area", id)
	if err != nil {
		return nil, err
	}
	departments, err := s.stores.Departments.Count(ctx, repository.Filter{"area": id})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := integrity.AreaDelete(area, departments); err != nil {
		s.logger.Info("area delete blocked", zap.String("area_id", id), zap.Int64("departments", departments))
		return nil, err
	}
	if err := deleteByID(ctx, s.stores.Areas, "area", id); err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventAreaDeleted, events.EntityArea, id, nil))
	return &domain.Deletion{ID: id, Message: "area deleted successfully"}, nil
}
