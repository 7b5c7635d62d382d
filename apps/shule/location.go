package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/session"
)

// locator tracks the app's current path between invocations; the terminal
// analog of the browser location bar. The tenant slug on every request is
// derived from it.
type locator struct {
	file  string
	store session.Store
}

func newLocator(file string, store session.Store) *locator {
	return &locator{file: file, store: store}
}

// Current resolves, in order: an explicit `use` override, the signed-in
// user's school dashboard, the login page.
func (l *locator) Current() string {
	if data, err := os.ReadFile(l.file); err == nil {
		if path := strings.TrimSpace(string(data)); path != "" {
			return path
		}
	}
	if usr := l.store.Load(); usr != nil && usr.SchoolSlug != "" {
		return "/" + usr.SchoolSlug + "/dashboard"
	}
	return "/login"
}

func (l *locator) Set(path string) error {
	if err := os.MkdirAll(filepath.Dir(l.file), 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	return errors.Wrap(os.WriteFile(l.file, []byte(path+"\n"), 0o600), "saving location")
}

func (l *locator) Reset() error {
	if err := os.Remove(l.file); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "resetting location")
	}
	return nil
}
