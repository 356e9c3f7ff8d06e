package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// Stores groups the four entity collections.
type Stores struct {
	Areas       repository.Collection[domain.Area]
	Departments repository.Collection[domain.Department]
	Supervisors repository.Collection[domain.Supervisor]
	Employees   repository.Collection[domain.Employee]
}

// NewMemoryStores builds empty in-process collections.
func NewMemoryStores() Stores {
	return Stores{
		Areas:       repository.NewMemoryCollection[domain.Area](repository.AreasCollection),
		Departments: repository.NewMemoryCollection[domain.Department](repository.DepartmentsCollection),
		Supervisors: repository.NewMemoryCollection[domain.Supervisor](repository.SupervisorsCollection),
		Employees:   repository.NewMemoryCollection[domain.Employee](repository.EmployeesCollection),
	}
}

// NewPostgresStores builds collections on the shared documents table.
func NewPostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Areas:       repository.NewPostgresCollection[domain.Area](pool, repository.AreasCollection),
		Departments: repository.NewPostgresCollection[domain.Department](pool, repository.DepartmentsCollection),
		Supervisors: repository.NewPostgresCollection[domain.Supervisor](pool, repository.SupervisorsCollection),
		Employees:   repository.NewPostgresCollection[domain.Employee](pool, repository.EmployeesCollection),
	}
}

// Dependencies encapsulates what the entity services are built from.
type Dependencies struct {
	Stores   Stores
	Sequence repository.Sequence
	Events   events.Dispatcher
	Logger   *zap.Logger
}

func (d Dependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// findOptional returns nil without error when nothing matches.
func findOptional[T any](ctx context.Context, coll repository.Collection[T], filter repository.Filter) (*T, error) {
	doc, err := coll.FindOne(ctx, filter)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

func findByIDOptional[T any](ctx context.Context, coll repository.Collection[T], id string) (*T, error) {
	doc, err := coll.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

// mustFindByID converts a missing document into a NotFound error for entity.
func mustFindByID[T any](ctx context.Context, coll repository.Collection[T], entity, id string) (*T, error) {
	doc, err := coll.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound(entity+" not found", map[string]any{"id": id})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

// deleteByID removes a loaded document; a concurrent delete surfaces as NotFound.
func deleteByID[T any](ctx context.Context, coll repository.Collection[T], entity, id string) error {
	err := coll.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(entity+" not found", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err))
	}
}
