package entity

import (
	"context"
	"fmt"

	"github.com/CampusFoundry/ums-console/pkg/models"
	"github.com/CampusFoundry/ums-console/pkg/umsapi"
)

// departmentService adapts the departments API to the generic contract.
type departmentService struct {
	client *umsapi.Client
	umsID  string
}

func (s departmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.client.ListDepartments(ctx, s.umsID)
}

func (s departmentService) Create(ctx context.Context, dto any) (*models.Department, error) {
	in, err := asInput[umsapi.DepartmentInput](dto)
	if err != nil {
		return nil, err
	}
	in.UMSID = s.umsID
	return s.client.CreateDepartment(ctx, in)
}

func (s departmentService) Update(ctx context.Context, id string, dto any) (*models.Department, error) {
	in, err := asInput[umsapi.DepartmentInput](dto)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateDepartment(ctx, id, in)
}

func (s departmentService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteDepartment(ctx, id)
}

// Departments builds the department controller for one UMS instance.
func Departments(client *umsapi.Client, umsID string) *Controller[models.Department] {
	return NewController("department", departmentService{client: client, umsID: umsID},
		func(d models.Department) string { return d.ID })
}

// programService adapts the programs API.
type programService struct {
	client *umsapi.Client
	umsID  string
}

func (s programService) List(ctx context.Context) ([]models.Program, error) {
	return s.client.ListPrograms(ctx, s.umsID)
}

func (s programService) Create(ctx context.Context, dto any) (*models.Program, error) {
	in, err := asInput[umsapi.ProgramInput](dto)
	if err != nil {
		return nil, err
	}
	in.UMSID = s.umsID
	return s.client.CreateProgram(ctx, in)
}

func (s programService) Update(ctx context.Context, id string, dto any) (*models.Program, error) {
	in, err := asInput[umsapi.ProgramInput](dto)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateProgram(ctx, id, in)
}

func (s programService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteProgram(ctx, id)
}

// Programs builds the program controller for one UMS instance.
func Programs(client *umsapi.Client, umsID string) *Controller[models.Program] {
	return NewController("program", programService{client: client, umsID: umsID},
		func(p models.Program) string { return p.ID })
}

// studentService adapts the students API.
type studentService struct {
	client *umsapi.Client
	umsID  string
}

func (s studentService) List(ctx context.Context) ([]models.Student, error) {
	return s.client.ListStudents(ctx, s.umsID, 0, 0)
}

func (s studentService) Create(ctx context.Context, dto any) (*models.Student, error) {
	in, err := asInput[umsapi.StudentInput](dto)
	if err != nil {
		return nil, err
	}
	in.UMSID = s.umsID
	return s.client.CreateStudent(ctx, in)
}

func (s studentService) Update(ctx context.Context, id string, dto any) (*models.Student, error) {
	in, err := asInput[umsapi.StudentInput](dto)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateStudent(ctx, id, in)
}

func (s studentService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteStudent(ctx, id)
}

// Students builds the student controller for one UMS instance.
func Students(client *umsapi.Client, umsID string) *Controller[models.Student] {
	return NewController("student", studentService{client: client, umsID: umsID},
		func(st models.Student) string { return st.ID })
}

// roleService adapts the roles API.
type roleService struct {
	client *umsapi.Client
}

func (s roleService) List(ctx context.Context) ([]models.RemoteRole, error) {
	return s.client.ListRoles(ctx)
}

func (s roleService) Create(ctx context.Context, dto any) (*models.RemoteRole, error) {
	in, err := asInput[umsapi.RoleInput](dto)
	if err != nil {
		return nil, err
	}
	return s.client.CreateRole(ctx, in)
}

func (s roleService) Update(ctx context.Context, id string, dto any) (*models.RemoteRole, error) {
	in, err := asInput[umsapi.RoleInput](dto)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateRole(ctx, id, in)
}

func (s roleService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteRole(ctx, id)
}

// Roles builds the persisted-role controller.
func Roles(client *umsapi.Client) *Controller[models.RemoteRole] {
	return NewController("role", roleService{client: client},
		func(r models.RemoteRole) string { return r.ID })
}

func asInput[T any](dto any) (T, error) {
	in, ok := dto.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("expected %T, got %T", zero, dto)
	}
	return in, nil
}
