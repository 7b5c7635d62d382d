package api_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/api"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/session"
	"github.com/shulehub/shule/rest"
	emailsvc "github.com/shulehub/shule/services/email"
	"github.com/shulehub/shule/stubapi"
	testutil "github.com/shulehub/shule/tests"
)

// testEnv glues a stub backend, a session store and the services together the
// way the app wires them.
type testEnv struct {
	store    session.Store
	services *api.Services
	location string
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	srv := testutil.StartStub(t)
	env := &testEnv{store: testutil.TempStore(t), location: "/login"}

	client, err := rest.NewClient(rest.Options{
		BaseURL:  srv.URL,
		Tokens:   env.store,
		Location: func() string { return env.location },
	})
	require.NoError(t, err)
	env.services = api.New(client)
	return env
}

// signIn logs in, persists the session and moves the location to the school.
func (env *testEnv) signIn(t *testing.T, email string) session.User {
	t.Helper()
	usr, err := env.services.Auth.Login(context.Background(), email, stubapi.DemoPassword)
	require.NoError(t, err)
	require.NoError(t, env.store.Save(usr))
	if usr.SchoolSlug != "" {
		env.location = "/" + usr.SchoolSlug + "/dashboard"
	}
	return usr
}

func Test_AuthService_Login(t *testing.T) {
	env := setup(t)

	usr, err := env.services.Auth.Login(context.Background(), "Admin@Greenfield.sc", stubapi.DemoPassword)
	require.NoError(t, err)

	assert.Equal(t, session.RoleAdministrator, usr.Role)
	assert.Equal(t, "greenfield", usr.SchoolSlug)
	assert.NotEmpty(t, usr.Token)
}

func Test_AuthService_LoginBadCredentials(t *testing.T) {
	env := setup(t)

	_, err := env.services.Auth.Login(context.Background(), "admin@greenfield.sc", "wrong")
	require.Error(t, err)

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "authentication failed", apiErr.Message)
}

func Test_AuthService_LoginValidation(t *testing.T) {
	env := setup(t)

	_, err := env.services.Auth.Login(context.Background(), "not-an-email", "pwd")
	require.Error(t, err)

	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.NotEmpty(t, vErr.Fields)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func Test_AuthService_Profile(t *testing.T) {
	env := setup(t)
	usr := env.signIn(t, "fees@greenfield.sc")

	profile, err := env.services.Auth.Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, usr.ID, profile.ID)
	assert.Equal(t, usr.Permissions, profile.Permissions)
	assert.Empty(t, profile.Token, "profile never echoes the token")
}

func Test_AuthService_ChangePassword(t *testing.T) {
	env := setup(t)
	env.signIn(t, "admin@greenfield.sc")

	// the policy runs client-side, before any request is made
	err := env.services.Auth.ChangePassword(context.Background(), api.ChangePassword{
		CurrentPassword: stubapi.DemoPassword,
		NewPassword:     "weak",
		PasswordConfirm: "weak",
	})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)

	err = env.services.Auth.ChangePassword(context.Background(), api.ChangePassword{
		CurrentPassword: stubapi.DemoPassword,
		NewPassword:     "N3w-Secret!",
		PasswordConfirm: "N3w-Secret!",
	})
	require.NoError(t, err)

	// old password no longer valid
	_, err = env.services.Auth.Login(context.Background(), "admin@greenfield.sc", stubapi.DemoPassword)
	require.Error(t, err)
	_, err = env.services.Auth.Login(context.Background(), "admin@greenfield.sc", "N3w-Secret!")
	require.NoError(t, err)
}

func Test_AuthService_PasswordReset(t *testing.T) {
	env := setup(t)

	// unknown addresses get the same answer as known ones
	err := env.services.Auth.ForgotPassword(context.Background(), "nobody@greenfield.sc")
	require.NoError(t, err)

	err = env.services.Auth.ForgotPassword(context.Background(), "Admin@Greenfield.sc")
	require.NoError(t, err)

	msg, ok := emailsvc.LastSentMessage()
	require.True(t, ok)
	assert.Equal(t, "admin@greenfield.sc", msg.To[0].Address)

	m := regexp.MustCompile(`/login/reset/([^/\s]+)/(\S+)`).FindStringSubmatch(msg.TextContent)
	require.Len(t, m, 3, "reset mail carries the link")
	uid, token := m[1], m[2]

	err = env.services.Auth.ResetPassword(context.Background(), api.ResetPassword{
		UID:             uid,
		Token:           "tampered-" + token,
		NewPassword:     "N3w-Secret!",
		PasswordConfirm: "N3w-Secret!",
	})
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid or expired reset link", apiErr.Message)

	err = env.services.Auth.ResetPassword(context.Background(), api.ResetPassword{
		UID:             uid,
		Token:           token,
		NewPassword:     "N3w-Secret!",
		PasswordConfirm: "N3w-Secret!",
	})
	require.NoError(t, err)

	_, err = env.services.Auth.Login(context.Background(), "admin@greenfield.sc", "N3w-Secret!")
	require.NoError(t, err)

	// the link is single-use: the password change invalidated it
	err = env.services.Auth.ResetPassword(context.Background(), api.ResetPassword{
		UID:             uid,
		Token:           token,
		NewPassword:     "An0ther-Secret!",
		PasswordConfirm: "An0ther-Secret!",
	})
	require.ErrorAs(t, err, &apiErr)
}
