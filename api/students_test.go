package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/api"
	"github.com/shulehub/shule/core"
)

func Test_StudentsService_CRUD(t *testing.T) {
	env := setup(t)
	env.signIn(t, "admin@greenfield.sc")

	students, err := env.services.Students.List(context.Background(), api.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, students, 2)

	classID := students[0].ClassID

	created, err := env.services.Students.Create(context.Background(), api.NewStudent{
		AdmissionNo: "GF-0003",
		Name:        "Juma Hassan",
		ClassID:     classID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.AdmittedAt.IsZero())

	got, err := env.services.Students.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := env.services.Students.Update(context.Background(), created.ID, api.NewStudent{
		AdmissionNo: "GF-0003",
		Name:        "Juma H. Hassan",
		ClassID:     classID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Juma H. Hassan", updated.Name)

	require.NoError(t, env.services.Students.Delete(context.Background(), created.ID))

	_, err = env.services.Students.Get(context.Background(), created.ID)
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func Test_StudentsService_Search(t *testing.T) {
	env := setup(t)
	env.signIn(t, "admin@greenfield.sc")

	students, err := env.services.Students.List(context.Background(), api.StudentFilter{Search: "amani"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Amani Otieno", students[0].Name)
}

func Test_StudentsService_ValidationRunsLocally(t *testing.T) {
	env := setup(t)
	env.signIn(t, "admin@greenfield.sc")

	_, err := env.services.Students.Create(context.Background(), api.NewStudent{Name: "No Class"})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func Test_StudentsService_PermissionScoping(t *testing.T) {
	env := setup(t)

	// the fees clerk's permission list includes the students module
	env.signIn(t, "fees@greenfield.sc")
	_, err := env.services.Students.List(context.Background(), api.StudentFilter{})
	require.NoError(t, err)

	// the parent account carries no permission list at all
	env.signIn(t, "parent@greenfield.sc")
	_, err = env.services.Students.List(context.Background(), api.StudentFilter{})
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "permission denied", apiErr.Message)
}

func Test_StudentsService_TenantHeaderRequired(t *testing.T) {
	env := setup(t)
	env.signIn(t, "admin@greenfield.sc")

	// navigating back to a reserved path strips the tenant header
	env.location = "/login"
	_, err := env.services.Students.List(context.Background(), api.StudentFilter{})

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "missing school header", apiErr.Message)
}

func Test_StudentsService_TokenFreshness(t *testing.T) {
	env := setup(t)
	env.location = "/greenfield/students"

	// the client existed before any session did
	_, err := env.services.Students.List(context.Background(), api.StudentFilter{})
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	// login writes the store; the same client must pick the token up
	env.signIn(t, "admin@greenfield.sc")
	_, err = env.services.Students.List(context.Background(), api.StudentFilter{})
	require.NoError(t, err)
}
