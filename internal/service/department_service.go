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

// DepartmentInput carries the fields of a new department. Area and Supervisor are ids.
type DepartmentInput struct {
	Name       string `json:"name" validate:"required,max=200"`
	Area       string `json:"area" validate:"required"`
	Supervisor string `json:"supervisor" validate:"required"`
}

// DepartmentPatch carries the fields to change; nil fields stay untouched.
type DepartmentPatch struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Area       *string `json:"area" validate:"omitempty,min=1"`
	Supervisor *string `json:"supervisor" validate:"omitempty,min=1"`
}

func (p DepartmentPatch) empty() bool {
	return p.Name == nil && p.Area == nil && p.Supervisor == nil
}

// DepartmentService manages departments and keeps employee references to them current.
type DepartmentService struct {
	stores   Stores
	sequence repository.Sequence
	events   events.Dispatcher
	logger   *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(deps Dependencies) *DepartmentService {
	return &DepartmentService{
		stores:   deps.Stores,
		sequence: deps.Sequence,
		events:   deps.Events,
		logger:   deps.logger(),
	}
}

// List returns every department with its area and supervisor resolved.
func (s *DepartmentService) List(ctx context.Context) ([]domain.DepartmentView, error) {
	departments, err := s.stores.Departments.Find(ctx, nil)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.resolve(ctx, departments)
}

// GetByID fetches a department with its area and supervisor resolved.
func (s *DepartmentService) GetByID(ctx context.Context, id string) (*domain.DepartmentView, error) {
	dept, err := mustFindByID(ctx, s.stores.Departments, "department", id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, dept)
}

// Create adds a department in an existing area under an existing supervisor and assigns the
// next department number.
func (s *DepartmentService) Create(ctx context.Context, in DepartmentInput) (*domain.DepartmentView, error) {
	s.logger.Debug("create department received", zap.Any("input", in))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	holder, err := findOptional(ctx, s.stores.Departments, repository.Filter{"name": in.Name})
	if err != nil {
		return nil, err
	}
	area, err := findByIDOptional(ctx, s.stores.Areas, in.Area)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("department area lookup", zap.String("area_id", in.Area), zap.Bool("found", area != nil))
	sup, err := findByIDOptional(ctx, s.stores.Supervisors, in.Supervisor)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("department supervisor lookup", zap.String("supervisor_id", in.Supervisor), zap.Bool("found", sup != nil))
	if err := integrity.DepartmentCreate(holder, in.Area, area, in.Supervisor, sup); err != nil {
		return nil, err
	}

	number, err := s.sequence.Next(ctx, domain.DepartmentSequence)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := time.Now().UTC()
	supervisorID := sup.ID
	dept := domain.Department{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Number:       number,
		AreaID:       area.ID,
		SupervisorID: &supervisorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.stores.Departments.Insert(ctx, dept.ID, dept); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventDepartmentCreated, events.EntityDepartment, dept.ID, dept))
	return buildDepartmentView(dept, area, sup), nil
}

// Update changes name, area and supervisor. A rename refreshes the department name held by
// every employee that references it. The department number never changes.
func (s *DepartmentService) Update(ctx context.Context, id string, patch DepartmentPatch) (*domain.DepartmentView, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	dept, err := mustFindByID(ctx, s.stores.Departments, "department", id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return s.view(ctx, dept)
	}

	changes := repository.Patch{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		holder, err := findOptional(ctx, s.stores.Departments, repository.Filter{"name": *patch.Name})
		if err != nil {
			return nil, err
		}
		if err := integrity.DepartmentRename(id, holder); err != nil {
			return nil, err
		}
		changes["name"] = *patch.Name
	}
	if patch.Area != nil {
		area, err := findByIDOptional(ctx, s.stores.Areas, *patch.Area)
		if err != nil {
			return nil, err
		}
		if err := integrity.DepartmentArea(*patch.Area, area); err != nil {
			return nil, err
		}
		changes["area"] = *patch.Area
	}
	if patch.Supervisor != nil {
		sup, err := findByIDOptional(ctx, s.stores.Supervisors, *patch.Supervisor)
		if err != nil {
			return nil, err
		}
		if err := integrity.DepartmentSupervisor(*patch.Supervisor, sup); err != nil {
			return nil, err
		}
		changes["supervisor"] = *patch.Supervisor
	}

	if _, err := s.stores.Departments.UpdateMany(ctx, repository.ByID(id), changes); err != nil {
		return nil, apperrors.MapError(err)
	}

	if patch.Name != nil && *patch.Name != dept.Name {
		if err := s.renameEmployeeRefs(ctx, id, dept.Name, *patch.Name); err != nil {
			return nil, err
		}
	}

	updated, err := mustFindByID(ctx, s.stores.Departments, "department", id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.NewEvent(events.EventDepartmentUpdated, events.EntityDepartment, id, updated))
	return s.view(ctx, updated)
}

// Delete removes a department no employee references.
func (s *DepartmentService) Delete(ctx context.Context, id string) (*domain.Deletion, error) {
	dept, err := mustFindByID(ctx, s.stores.Departments, "department", id)
	if err != nil {
		return nil, err
	}
	employees, err := s.stores.Employees.Count(ctx, departmentHolders(id))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := integrity.DepartmentDelete(dept, employees); err != nil {
		s.logger.Info("department delete blocked", zap.String("department_id", id), zap.Int64("employees", employees))
		return nil, err
	}
	if err := deleteByID(ctx, s.stores.Departments, "department", id); err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventDepartmentDeleted, events.EntityDepartment, id, nil))
	return &domain.Deletion{ID: id, Message: "department deleted successfully"}, nil
}

// renameEmployeeRefs rewrites the department list of each employee holding id. Employees are
// updated one at a time and a failure leaves the earlier ones renamed.
func (s *DepartmentService) renameEmployeeRefs(ctx context.Context, id, oldName, newName string) error {
	holders, err := s.stores.Employees.Find(ctx, departmentHolders(id))
	if err != nil {
		return apperrors.MapError(err)
	}

	var renamed int64
	now := time.Now().UTC()
	for _, emp := range holders {
		refs, changed := integrity.RenameDepartmentRefs(emp.Departments, id, newName)
		if !changed {
			continue
		}
		matched, err := s.stores.Employees.UpdateMany(ctx, repository.ByID(emp.ID), repository.Patch{
			"departments": refs,
			"updatedAt":   now,
		})
		if err != nil {
			return apperrors.MapError(err)
		}
		renamed += matched
	}

	s.logger.Info("department rename applied to employees",
		zap.String("department_id", id),
		zap.String("old_name", oldName),
		zap.String("new_name", newName),
		zap.Int64("employees", renamed))
	if renamed > 0 {
		publish(ctx, s.events, s.logger, events.NewEvent(events.EventEmployeesDepartmentRenamed, events.EntityDepartment, id,
			events.DepartmentRenamedPayload{OldName: oldName, NewName: newName, Employees: renamed}))
	}
	return nil
}

func (s *DepartmentService) view(ctx context.Context, dept *domain.Department) (*domain.DepartmentView, error) {
	views, err := s.resolve(ctx, []domain.Department{*dept})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// resolve embeds areas and supervisors with one lookup per collection. References that no longer
// resolve are left nil.
func (s *DepartmentService) resolve(ctx context.Context, departments []domain.Department) ([]domain.DepartmentView, error) {
	areaIDs := make([]string, 0, len(departments))
	supervisorIDs := make([]string, 0, len(departments))
	for _, dept := range departments {
		areaIDs = append(areaIDs, dept.AreaID)
		if dept.SupervisorID != nil {
			supervisorIDs = append(supervisorIDs, *dept.SupervisorID)
		}
	}

	areas, err := s.stores.Areas.FindByIDs(ctx, areaIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	supervisors, err := s.stores.Supervisors.FindByIDs(ctx, supervisorIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	areaByID := make(map[string]*domain.Area, len(areas))
	for i := range areas {
		areaByID[areas[i].ID] = &areas[i]
	}
	supervisorByID := make(map[string]*domain.Supervisor, len(supervisors))
	for i := range supervisors {
		supervisorByID[supervisors[i].ID] = &supervisors[i]
	}

	views := make([]domain.DepartmentView, 0, len(departments))
	for _, dept := range departments {
		var sup *domain.Supervisor
		if dept.SupervisorID != nil {
			sup = supervisorByID[*dept.SupervisorID]
		}
		views = append(views, *buildDepartmentView(dept, areaByID[dept.AreaID], sup))
	}
	return views, nil
}

func buildDepartmentView(dept domain.Department, area *domain.Area, sup *domain.Supervisor) *domain.DepartmentView {
	return &domain.DepartmentView{
		ID:         dept.ID,
		Name:       dept.Name,
		Number:     dept.Number,
		Area:       area,
		Supervisor: sup,
		CreatedAt:  dept.CreatedAt,
		UpdatedAt:  dept.UpdatedAt,
	}
}

// departmentHolders matches employees whose department list references id.
func departmentHolders(id string) repository.Filter {
	return repository.Filter{"departments": []any{map[string]any{"id": id}}}
}
