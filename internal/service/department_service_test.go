package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

func TestDepartmentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	area := f.area(t, "IT")
	sup := f.supervisor(t, "Ana")

	first := f.department(t, "Support", area.ID, sup.ID)
	second := f.department(t, "Sales", area.ID, sup.ID)
	assert.EqualValues(t, 1, first.Number)
	assert.EqualValues(t, 2, second.Number)
	require.NotNil(t, first.Area)
	assert.Equal(t, "IT", first.Area.Name)
	require.NotNil(t, first.Supervisor)
	assert.Equal(t, "Ana", first.Supervisor.Name)

	tests := []struct {
		name string
		in   DepartmentInput
		kind apperrors.Kind
	}{
		{"missing supervisor", DepartmentInput{Name: "Ops", Area: area.ID}, apperrors.KindBadInput},
		{"missing name", DepartmentInput{Area: area.ID, Supervisor: sup.ID}, apperrors.KindBadInput},
		{"taken name", DepartmentInput{Name: "Support", Area: area.ID, Supervisor: sup.ID}, apperrors.KindConflict},
		{"unknown area", DepartmentInput{Name: "Ops", Area: "nope", Supervisor: sup.ID}, apperrors.KindNotFound},
		{"unknown supervisor", DepartmentInput{Name: "Ops", Area: area.ID, Supervisor: "nope"}, apperrors.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.departments.Create(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))
		})
	}

	third := f.department(t, "Ops", area.ID, sup.ID)
	assert.EqualValues(t, 3, third.Number)
}

func TestDepartmentUnknownAreaMessage(t *testing.T) {
	f := newFixture(t)
	sup := f.supervisor(t, "Ana")

	_, err := f.departments.Create(context.Background(), DepartmentInput{Name: "Ops", Area: "a-404", Supervisor: sup.ID})
	assert.EqualError(t, err, "area with ID a-404 not found")
}

func TestDepartmentGetAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	area := f.area(t, "IT")
	sup := f.supervisor(t, "Ana")
	dept := f.department(t, "Support", area.ID, sup.ID)

	got, err := f.departments.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, dept.Name, got.Name)
	assert.Equal(t, dept.Number, got.Number)
	assert.Equal(t, area.ID, got.Area.ID)
	assert.Equal(t, sup.ID, got.Supervisor.ID)

	all, err := f.departments.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "IT", all[0].Area.Name)

	_, err = f.departments.GetByID(ctx, "missing")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDepartmentDanglingReferencesResolveToNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	area := f.area(t, "IT")
	sup := f.supervisor(t, "Ana")
	dept := f.department(t, "Support", area.ID, sup.ID)

	require.NoError(t, f.deps.Stores.Areas.DeleteByID(ctx, area.ID))

	got, err := f.departments.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Area)
	assert.NotNil(t, got.Supervisor)
}

func TestDepartmentUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.area(t, "IT")
	hr := f.area(t, "HR")
	ana := f.supervisor(t, "Ana")
	bea := f.supervisor(t, "Bea")
	support := f.department(t, "Support", it.ID, ana.ID)
	f.department(t, "Sales", it.ID, ana.ID)

	_, err := f.departments.Update(ctx, support.ID, DepartmentPatch{Name: ptr("Sales")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = f.departments.Update(ctx, support.ID, DepartmentPatch{Area: ptr("nope")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = f.departments.Update(ctx, support.ID, DepartmentPatch{Supervisor: ptr("nope")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	moved, err := f.departments.Update(ctx, support.ID, DepartmentPatch{Area: ptr(hr.ID), Supervisor: ptr(bea.ID)})
	require.NoError(t, err)
	assert.Equal(t, "HR", moved.Area.Name)
	assert.Equal(t, "Bea", moved.Supervisor.Name)
	assert.Equal(t, support.Number, moved.Number)

	same, err := f.departments.Update(ctx, support.ID, DepartmentPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Support", same.Name)
}

func TestDepartmentRenameRefreshesEmployees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")

	first, err := f.employees.Create(ctx, employeeInput(1, ids))
	require.NoError(t, err)
	second, err := f.employees.Create(ctx, employeeInput(2, []string{ids[2], ids[1], ids[0]}))
	require.NoError(t, err)

	renamed, err := f.departments.Update(ctx, ids[1], DepartmentPatch{Name: ptr("Revenue")})
	require.NoError(t, err)
	assert.Equal(t, "Revenue", renamed.Name)

	for _, id := range []string{first.ID, second.ID} {
		emp, err := f.deps.Stores.Employees.FindByID(ctx, id)
		require.NoError(t, err)
		names := map[string]string{}
		for _, ref := range emp.Departments {
			names[ref.ID] = ref.Name
		}
		assert.Equal(t, map[string]string{ids[0]: "Support", ids[1]: "Revenue", ids[2]: "Ops"}, names)
	}

	var cascade *events.Event
	for i := range f.published {
		if f.published[i].Type == events.EventEmployeesDepartmentRenamed {
			cascade = &f.published[i]
		}
	}
	require.NotNil(t, cascade)
	payload, ok := cascade.Payload.(events.DepartmentRenamedPayload)
	require.True(t, ok)
	assert.EqualValues(t, 2, payload.Employees)
	assert.Equal(t, "Sales", payload.OldName)
}

func TestDepartmentDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")
	area, err := f.deps.Stores.Areas.FindOne(ctx, nil)
	require.NoError(t, err)
	sup, err := f.deps.Stores.Supervisors.FindOne(ctx, nil)
	require.NoError(t, err)
	spare := f.department(t, "Spare", area.ID, sup.ID)

	_, err = f.employees.Create(ctx, employeeInput(1, ids))
	require.NoError(t, err)

	_, err = f.departments.Delete(ctx, ids[0])
	assert.True(t, apperrors.IsKind(err, apperrors.KindDependencyInUse))

	deleted, err := f.departments.Delete(ctx, spare.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Deletion{ID: spare.ID, Message: "department deleted successfully"}, *deleted)
}

func TestScenarioAreaWithDepartmentCannotBeDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.area(t, "IT")
	sup := f.supervisor(t, "Ana")
	f.department(t, "Support", it.ID, sup.ID)

	_, err := f.areas.Delete(ctx, it.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDependencyInUse, apperrors.KindOf(err))

	still, err := f.areas.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "IT", still.Name)
}
