package testutil

import (
	"net/http/httptest"
	"net/mail"
	"path/filepath"
	"testing"

	"github.com/shulehub/shule/core/session"
	emailsvc "github.com/shulehub/shule/services/email"
	"github.com/shulehub/shule/stubapi"
)

// TempStore returns a file-backed session store rooted in a per-test dir.
func TempStore(t *testing.T) session.Store {
	t.Helper()
	return session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

// StaffUser builds a staff user of the given role carrying perms.
func StaffUser(role string, perms ...session.Permission) session.User {
	return session.User{
		ID:          "u-1",
		Name:        "Test Staff",
		Email:       "staff@test.sc",
		Role:        role,
		Permissions: perms,
		SchoolSlug:  "greenfield",
		Token:       "test-token",
	}
}

// StartStub runs the stub ERP backend on an ephemeral port.
func StartStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(stubapi.NewServer(&stubapi.Options{
		Secret:         []byte("test-secret"),
		Email:          emailsvc.NewConsoleServiceMock("Shule Stub", mail.Address{Name: "Shule", Address: "noreply@shule.app"}),
		DisableReqLogs: true,
		Debug:          false,
	}))
	t.Cleanup(srv.Close)
	return srv
}
