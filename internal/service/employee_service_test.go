package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

func TestEmployeeCreateResolvesDepartments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")

	created, err := f.employees.Create(ctx, employeeInput(10, ids))
	require.NoError(t, err)
	assert.EqualValues(t, 10, created.Number)
	assert.Equal(t, "male", created.Gender)

	got, err := f.employees.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Departments, 3)
	assert.Equal(t, []string{"Support", "Sales", "Ops"},
		[]string{got.Departments[0].Name, got.Departments[1].Name, got.Departments[2].Name})
	assert.Equal(t, "Luis", got.FirstName)
	assert.Equal(t, 30, got.Age)

	all, err := f.employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Departments, 3)
}

func TestEmployeeCreateRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")
	_, err := f.employees.Create(ctx, employeeInput(1, ids))
	require.NoError(t, err)

	badGender := employeeInput(2, ids)
	badGender.Gender = "other"
	missingAge := employeeInput(2, ids)
	missingAge.Age = nil

	tests := []struct {
		name string
		in   EmployeeInput
		kind apperrors.Kind
	}{
		{"two departments", employeeInput(2, ids[:2]), apperrors.KindBadInput},
		{"four departments", employeeInput(2, append([]string{"x"}, ids...)), apperrors.KindBadInput},
		{"no departments", employeeInput(2, nil), apperrors.KindBadInput},
		{"unknown department", employeeInput(2, []string{ids[0], ids[1], "missing"}), apperrors.KindNotFound},
		{"repeated department", employeeInput(2, []string{ids[0], ids[0], ids[1]}), apperrors.KindNotFound},
		{"lowercase other", badGender, apperrors.KindBadInput},
		{"missing age", missingAge, apperrors.KindBadInput},
		{"zero number", employeeInput(0, ids), apperrors.KindBadInput},
		{"taken number", employeeInput(1, ids), apperrors.KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.employees.Create(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))
		})
	}
}

func TestEmployeeGenderAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")

	for i, gender := range []string{"Male", "FEMALE", "female", "Other"} {
		in := employeeInput(int64(i+1), ids)
		in.Gender = gender
		emp, err := f.employees.Create(ctx, in)
		require.NoError(t, err, gender)
		assert.Equal(t, gender, emp.Gender)
	}
}

func TestEmployeeUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")
	area, err := f.deps.Stores.Areas.FindOne(ctx, nil)
	require.NoError(t, err)
	sup, err := f.deps.Stores.Supervisors.FindOne(ctx, nil)
	require.NoError(t, err)
	extra := f.department(t, "Legal", area.ID, sup.ID)

	emp, err := f.employees.Create(ctx, employeeInput(1, ids))
	require.NoError(t, err)
	other, err := f.employees.Create(ctx, employeeInput(2, ids))
	require.NoError(t, err)

	same, err := f.employees.Update(ctx, emp.ID, EmployeePatch{})
	require.NoError(t, err)
	assert.Equal(t, emp.Number, same.Number)

	_, err = f.employees.Update(ctx, emp.ID, EmployeePatch{Departments: ids[:1]})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadInput))

	_, err = f.employees.Update(ctx, emp.ID, EmployeePatch{Departments: []string{ids[0], ids[1], "missing"}})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = f.employees.Update(ctx, emp.ID, EmployeePatch{Number: ptr(other.Number)})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = f.employees.Update(ctx, emp.ID, EmployeePatch{Gender: ptr("unknown")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadInput))

	updated, err := f.employees.Update(ctx, emp.ID, EmployeePatch{
		Number:      ptr(emp.Number),
		FirstName:   ptr("Lucia"),
		Age:         ptr(41),
		Gender:      ptr("Female"),
		Departments: []string{ids[0], ids[1], extra.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lucia", updated.FirstName)
	assert.Equal(t, "Perez", updated.LastName)
	assert.Equal(t, 41, updated.Age)
	assert.Equal(t, "Female", updated.Gender)
	require.Len(t, updated.Departments, 3)
	assert.Equal(t, "Legal", updated.Departments[2].Name)

	_, err = f.employees.Update(ctx, "missing", EmployeePatch{FirstName: ptr("X")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestEmployeeDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")
	emp, err := f.employees.Create(ctx, employeeInput(1, ids))
	require.NoError(t, err)

	deleted, err := f.employees.Delete(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "employee deleted successfully", deleted.Message)

	_, err = f.employees.Delete(ctx, emp.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = f.departments.Delete(ctx, ids[0])
	assert.NoError(t, err)
}

func TestEmployeeViewSkipsMissingDepartments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.threeDepartments(t, "Support", "Sales", "Ops")
	emp, err := f.employees.Create(ctx, employeeInput(1, ids))
	require.NoError(t, err)

	require.NoError(t, f.deps.Stores.Departments.DeleteByID(ctx, ids[1]))

	got, err := f.employees.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, got.Departments, 2)
	assert.Equal(t, ids[0], got.Departments[0].ID)
	assert.Equal(t, ids[2], got.Departments[1].ID)
}
