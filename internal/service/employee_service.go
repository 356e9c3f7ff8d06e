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

// EmployeeInput carries the fields of a new employee. Departments lists department ids.
type EmployeeInput struct {
	Number      *int64   `json:"employeeNumber" validate:"required,min=1"`
	FirstName   string   `json:"firstName" validate:"required,max=100"`
	LastName    string   `json:"lastName" validate:"required,max=100"`
	Age         *int     `json:"age" validate:"required,min=0,max=150"`
	Gender      string   `json:"gender" validate:"required,gender"`
	Departments []string `json:"departments" validate:"required"`
}

// EmployeePatch carries the fields to change; nil fields stay untouched. A non-nil Departments
// replaces the whole list.
type EmployeePatch struct {
	Number      *int64   `json:"employeeNumber" validate:"omitempty,min=1"`
	FirstName   *string  `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName    *string  `json:"lastName" validate:"omitempty,min=1,max=100"`
	Age         *int     `json:"age" validate:"omitempty,min=0,max=150"`
	Gender      *string  `json:"gender" validate:"omitempty,gender"`
	Departments []string `json:"departments"`
}

func (p EmployeePatch) empty() bool {
	return p.Number == nil && p.FirstName == nil && p.LastName == nil &&
		p.Age == nil && p.Gender == nil && p.Departments == nil
}

// EmployeeService manages employees and their three department references.
type EmployeeService struct {
	stores Stores
	events events.Dispatcher
	logger *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps Dependencies) *EmployeeService {
	return &EmployeeService{stores: deps.Stores, events: deps.Events, logger: deps.logger()}
}

// List returns every employee with departments resolved.
func (s *EmployeeService) List(ctx context.Context) ([]domain.EmployeeView, error) {
	employees, err := s.stores.Employees.Find(ctx, nil)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.resolve(ctx, employees)
}

// GetByID fetches an employee with departments resolved.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*domain.EmployeeView, error) {
	emp, err := mustFindByID(ctx, s.stores.Employees, "employee", id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, emp)
}

// Create adds an employee linked to exactly three existing departments.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*domain.EmployeeView, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	refs, err := s.departmentRefs(ctx, in.Departments)
	if err != nil {
		return nil, err
	}
	holder, err := findOptional(ctx, s.stores.Employees, repository.Filter{"employeeNumber": *in.Number})
	if err != nil {
		return nil, err
	}
	if err := integrity.EmployeeNumber("", holder); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	emp := domain.Employee{
		ID:          uuid.NewString(),
		Number:      *in.Number,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Age:         *in.Age,
		Gender:      in.Gender,
		Departments: refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stores.Employees.Insert(ctx, emp.ID, emp); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventEmployeeCreated, events.EntityEmployee, emp.ID, emp))
	return s.view(ctx, &emp)
}

// Update changes employee fields. A new department list goes through the same checks as Create.
func (s *EmployeeService) Update(ctx context.Context, id string, patch EmployeePatch) (*domain.EmployeeView, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	emp, err := mustFindByID(ctx, s.stores.Employees, "employee", id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return s.view(ctx, emp)
	}

	changes := repository.Patch{"updatedAt": time.Now().UTC()}
	if patch.Departments != nil {
		refs, err := s.departmentRefs(ctx, patch.Departments)
		if err != nil {
			return nil, err
		}
		changes["departments"] = refs
	}
	if patch.Number != nil {
		holder, err := findOptional(ctx, s.stores.Employees, repository.Filter{"employeeNumber": *patch.Number})
		if err != nil {
			return nil, err
		}
		if err := integrity.EmployeeNumber(id, holder); err != nil {
			return nil, err
		}
		changes["employeeNumber"] = *patch.Number
	}
	if patch.FirstName != nil {
		changes["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		changes["lastName"] = *patch.LastName
	}
	if patch.Age != nil {
		changes["age"] = *patch.Age
	}
	if patch.Gender != nil {
		changes["gender"] = *patch.Gender
	}

	if _, err := s.stores.Employees.UpdateMany(ctx, repository.ByID(id), changes); err != nil {
		return nil, apperrors.MapError(err)
	}

	updated, err := mustFindByID(ctx, s.stores.Employees, "employee", id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.NewEvent(events.EventEmployeeUpdated, events.EntityEmployee, id, updated))
	return s.view(ctx, updated)
}

// Delete removes an employee. Nothing references employees, so there is no guard.
func (s *EmployeeService) Delete(ctx context.Context, id string) (*domain.Deletion, error) {
	if _, err := mustFindByID(ctx, s.stores.Employees, "employee", id); err != nil {
		return nil, err
	}
	if err := deleteByID(ctx, s.stores.Employees, "employee", id); err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventEmployeeDeleted, events.EntityEmployee, id, nil))
	return &domain.Deletion{ID: id, Message: "employee deleted successfully"}, nil
}

// departmentRefs checks the requested department ids and returns them as references in
// request order.
func (s *EmployeeService) departmentRefs(ctx context.Context, ids []string) ([]domain.DepartmentRef, error) {
	if err := integrity.EmployeeDepartmentList(ids); err != nil {
		return nil, err
	}
	found, err := s.stores.Departments.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := integrity.EmployeeDepartmentsResolved(ids, found); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(found))
	for _, dept := range found {
		names[dept.ID] = dept.Name
	}
	refs := make([]domain.DepartmentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, domain.DepartmentRef{ID: id, Name: names[id]})
	}
	return refs, nil
}

func (s *EmployeeService) view(ctx context.Context, emp *domain.Employee) (*domain.EmployeeView, error) {
	views, err := s.resolve(ctx, []domain.Employee{*emp})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// resolve embeds departments with a single lookup. Departments that no longer exist are
// left out of the view.
func (s *EmployeeService) resolve(ctx context.Context, employees []domain.Employee) ([]domain.EmployeeView, error) {
	var ids []string
	for i := range employees {
		ids = append(ids, employees[i].DepartmentIDs()...)
	}
	departments, err := s.stores.Departments.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byID := make(map[string]domain.Department, len(departments))
	for _, dept := range departments {
		byID[dept.ID] = dept
	}

	views := make([]domain.EmployeeView, 0, len(employees))
	for _, emp := range employees {
		depts := make([]domain.Department, 0, len(emp.Departments))
		for _, ref := range emp.Departments {
			if dept, ok := byID[ref.ID]; ok {
				depts = append(depts, dept)
			}
		}
		views = append(views, domain.EmployeeView{
			ID:          emp.ID,
			Number:      emp.Number,
			FirstName:   emp.FirstName,
			LastName:    emp.LastName,
			Age:         emp.Age,
			Gender:      emp.Gender,
			Departments: depts,
			CreatedAt:   emp.CreatedAt,
			UpdatedAt:   emp.UpdatedAt,
		})
	}
	return views, nil
}
