// Package integrity holds the reference rules between areas, departments, supervisors and
// employees. Every rule works on store state the caller has already read and returns nil when
// the operation may proceed.
package integrity

import (
	"fmt"

	"github.com/spec-kit/staffing-service/internal/domain"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// AreaCreate rejects a name already held by another area. holder is the area found under the
// requested name, or nil.
func AreaCreate(holder *domain.Area) error {
	if holder != nil {
		return apperrors.NewConflict("area already exists", map[string]any{"name": holder.Name})
	}
	return nil
}

// AreaRename rejects a new name held by an area other than id.
func AreaRename(id string, holder *domain.Area) error {
	if holder != nil && holder.ID != id {
		return apperrors.NewConflict("area name is already in use", map[string]any{"name": holder.Name})
	}
	return nil
}

// AreaDelete blocks deleting an area that departments still reference.
func AreaDelete(area *domain.Area, departments int64) error {
	if departments > 0 {
		return apperrors.NewDependencyInUse("cannot delete an area with assigned departments", map[string]any{
			"id":          area.ID,
			"departments": departments,
		})
	}
	return nil
}

// DepartmentCreate checks a new department against its name holder and its referenced area and
// supervisor, in that order.
func DepartmentCreate(holder *domain.Department, areaID string, area *domain.Area, supervisorID string, supervisor *domain.Supervisor) error {
	if holder != nil {
		return apperrors.NewConflict("department name already exists", map[string]any{"name": holder.Name})
	}
	if err := DepartmentArea(areaID, area); err != nil {
		return err
	}
	if supervisor == nil {
		return apperrors.NewNotFound(fmt.Sprintf("supervisor with ID %s not found", supervisorID), map[string]any{"supervisor": supervisorID})
	}
	return nil
}

// DepartmentRename rejects a new name held by a department other than id.
func DepartmentRename(id string, holder *domain.Department) error {
	if holder != nil && holder.ID != id {
		return apperrors.NewConflict("department name already exists", map[string]any{"name": holder.Name})
	}
	return nil
}

// DepartmentArea requires the referenced area to exist.
func DepartmentArea(areaID string, area *domain.Area) error {
	if area == nil {
		return apperrors.NewNotFound(fmt.Sprintf("area with ID %s not found", areaID), map[string]any{"area": areaID})
	}
	return nil
}

// DepartmentSupervisor requires the referenced supervisor to exist.
func DepartmentSupervisor(supervisorID string, supervisor *domain.Supervisor) error {
	if supervisor == nil {
		return apperrors.NewNotFound("supervisor not found", map[string]any{"supervisor": supervisorID})
	}
	return nil
}

// DepartmentDelete blocks deleting a department that employees still reference.
func DepartmentDelete(dept *domain.Department, employees int64) error {
	if employees > 0 {
		return apperrors.NewDependencyInUse("department has assigned employees", map[string]any{
			"id":        dept.ID,
			"employees": employees,
		})
	}
	return nil
}

func SupervisorCreate(holder *domain.Supervisor) error {
	if holder != nil {
		return apperrors.NewConflict("supervisor already exists", map[string]any{"name": holder.Name})
	}
	return nil
}

func SupervisorRename(id string, holder *domain.Supervisor) error {
	if holder != nil && holder.ID != id {
		return apperrors.NewConflict("supervisor already exists", map[string]any{"name": holder.Name})
	}
	return nil
}

// SupervisorDelete blocks deleting a supervisor that still manages departments.
func SupervisorDelete(sup *domain.Supervisor, departments int64) error {
	if departments > 0 {
		return apperrors.NewDependencyInUse("cannot delete a supervisor with assigned departments", map[string]any{
			"id":          sup.ID,
			"departments": departments,
		})
	}
	return nil
}

// EmployeeDepartmentList requires exactly EmployeeDepartmentCount department ids.
func EmployeeDepartmentList(ids []string) error {
	if len(ids) != domain.EmployeeDepartmentCount {
		return apperrors.NewValidationError("employee must be linked to exactly three departments", map[string]any{
			"departments": len(ids),
		})
	}
	return nil
}

// EmployeeDepartmentsResolved compares the number of stored departments found for ids with the
// number requested. Repeated ids resolve to one document and fail the check.
func EmployeeDepartmentsResolved(ids []string, found []domain.Department) error {
	if len(found) != len(ids) {
		return apperrors.NewNotFound("one or more departments do not exist", map[string]any{
			"requested": ids,
			"found":     len(found),
		})
	}
	return nil
}

// EmployeeNumber rejects an employee number held by an employee other than id. Pass an empty id
// on create.
func EmployeeNumber(id string, holder *domain.Employee) error {
	if holder != nil && holder.ID != id {
		return apperrors.NewConflict("employee number already in use", map[string]any{"employeeNumber": holder.Number})
	}
	return nil
}

// RenameDepartmentRefs refreshes the display name of every reference to departmentID.
// The input slice is left untouched.
func RenameDepartmentRefs(refs []domain.DepartmentRef, departmentID, name string) ([]domain.DepartmentRef, bool) {
	out := make([]domain.DepartmentRef, len(refs))
	changed := false
	for i, ref := range refs {
		if ref.ID == departmentID && ref.Name != name {
			ref.Name = name
			changed = true
		}
		out[i] = ref
	}
	return out, changed
}
