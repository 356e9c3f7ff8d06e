package handlers

import (
	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/domain"
)

func areaResponse(a *domain.Area) *dto.AreaResponse {
	if a == nil {
		return nil
	}
	return &dto.AreaResponse{
		ID:        a.ID,
		Name:      a.Name,
		Building:  a.Building,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func supervisorResponse(s *domain.Supervisor) *dto.SupervisorResponse {
	if s == nil {
		return nil
	}
	return &dto.SupervisorResponse{
		ID:           s.ID,
		Name:         s.Name,
		FieldOfStudy: s.FieldOfStudy,
		Shift:        s.Shift,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func departmentResponse(d *domain.DepartmentView) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:               d.ID,
		Name:             d.Name,
		DepartmentNumber: d.Number,
		Area:             areaResponse(d.Area),
		Supervisor:       supervisorResponse(d.Supervisor),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func employeeResponse(e *domain.EmployeeView) dto.EmployeeResponse {
	departments := make([]dto.EmployeeDepartment, 0, len(e.Departments))
	for _, d := range e.Departments {
		departments = append(departments, dto.EmployeeDepartment{
			ID:               d.ID,
			Name:             d.Name,
			DepartmentNumber: d.Number,
			Area:             d.AreaID,
			Supervisor:       d.SupervisorID,
		})
	}
	return dto.EmployeeResponse{
		ID:             e.ID,
		EmployeeNumber: e.Number,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Age:            e.Age,
		Gender:         e.Gender,
		Departments:    departments,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func deletionResponse(d *domain.Deletion) dto.DeletionResponse {
	return dto.DeletionResponse{ID: d.ID, Message: d.Message}
}
