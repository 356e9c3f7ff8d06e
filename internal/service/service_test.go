package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/repository"
)

type fixture struct {
	deps        Dependencies
	areas       *AreaService
	departments *DepartmentService
	supervisors *SupervisorService
	employees   *EmployeeService
	published   []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	dispatcher := events.NewInMemoryDispatcher()
	for _, eventType := range events.AllTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	f.deps = Dependencies{
		Stores:   NewMemoryStores(),
		Sequence: repository.NewMemorySequence(),
		Events:   dispatcher,
		Logger:   zap.NewNop(),
	}
	f.areas = NewAreaService(f.deps)
	f.departments = NewDepartmentService(f.deps)
	f.supervisors = NewSupervisorService(f.deps)
	f.employees = NewEmployeeService(f.deps)
	return f
}

func (f *fixture) area(t *testing.T, name string) *domain.Area {
	t.Helper()
	area, err := f.areas.Create(context.Background(), AreaInput{Name: name, Building: "B1"})
	require.NoError(t, err)
	return area
}

func (f *fixture) supervisor(t *testing.T, name string) *domain.Supervisor {
	t.Helper()
	sup, err := f.supervisors.Create(context.Background(), SupervisorInput{Name: name, FieldOfStudy: "Engineering", Shift: "Morning"})
	require.NoError(t, err)
	return sup
}

func (f *fixture) department(t *testing.T, name, areaID, supervisorID string) *domain.DepartmentView {
	t.Helper()
	dept, err := f.departments.Create(context.Background(), DepartmentInput{Name: name, Area: areaID, Supervisor: supervisorID})
	require.NoError(t, err)
	return dept
}

// threeDepartments creates an area, a supervisor and departments named after names.
func (f *fixture) threeDepartments(t *testing.T, names ...string) []string {
	t.Helper()
	area := f.area(t, "IT")
	sup := f.supervisor(t, "Ana")
	ids := make([]string, 0, len(names))
	for _, name := range names {
		ids = append(ids, f.department(t, name, area.ID, sup.ID).ID)
	}
	return ids
}

func employeeInput(number int64, departments []string) EmployeeInput {
	age := 30
	return EmployeeInput{
		Number:      &number,
		FirstName:   "Luis",
		LastName:    "Perez",
		Age:         &age,
		Gender:      "male",
		Departments: departments,
	}
}

func ptr[T any](v T) *T {
	return &v
}
