package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthealth/internal/core/domain"
)

func TestCreateDepartment(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartmentRepo())

	department, err := svc.CreateDepartment(context.Background(), &CreateDepartmentInput{Name: " Cardiology "})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", department.Name)
	assert.True(t, department.IsOpen)
	assert.Equal(t, 50, department.MaxQueueSize)

	sized, err := svc.CreateDepartment(context.Background(), &CreateDepartmentInput{Name: "Pediatrics", MaxQueueSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, sized.MaxQueueSize)
}

func TestCreateDepartment_Validation(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartmentRepo())

	_, err := svc.CreateDepartment(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateDepartment(context.Background(), &CreateDepartmentInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateDepartment(context.Background(), &CreateDepartmentInput{Name: "ER", MaxQueueSize: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateDepartment(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartmentRepo())

	department, err := svc.CreateDepartment(context.Background(), &CreateDepartmentInput{Name: "Cardiology"})
	require.NoError(t, err)

	closed := false
	smaller := 10
	updated, err := svc.UpdateDepartment(context.Background(), department.ID, &UpdateDepartmentInput{
		IsOpen:       &closed,
		MaxQueueSize: &smaller,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsOpen)
	assert.Equal(t, 10, updated.MaxQueueSize)

	// Zero queue size is rejected; blank name is rejected.
	zero := 0
	_, err = svc.UpdateDepartment(context.Background(), department.ID, &UpdateDepartmentInput{MaxQueueSize: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	blank := " "
	_, err = svc.UpdateDepartment(context.Background(), department.ID, &UpdateDepartmentInput{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateDepartment(context.Background(), 999, &UpdateDepartmentInput{IsOpen: &closed})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	// Empty update returns the record as-is.
	same, err := svc.UpdateDepartment(context.Background(), department.ID, &UpdateDepartmentInput{})
	require.NoError(t, err)
	assert.Equal(t, 10, same.MaxQueueSize)
}

func TestListDepartments(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartmentRepo())

	rows, err := svc.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.CreateDepartment(context.Background(), &CreateDepartmentInput{Name: "Cardiology"})
	require.NoError(t, err)
	_, err = svc.CreateDepartment(context.Background(), &CreateDepartmentInput{Name: "Orthopedics"})
	require.NoError(t, err)

	rows, err = svc.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
