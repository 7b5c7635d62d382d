package session

import "strings"

// Roles. A User carries exactly one role; anything outside the fixed set is a
// custom staff role backed by an explicit permission list.
const (
	// RoleSuperAdmin is the platform-level role behind the administrative portal.
	RoleSuperAdmin = "superadmin"
	// RoleAdministrator is the tenant-level admin; implicit all-access within a school.
	RoleAdministrator = "administrator"
	RoleParent        = "parent"
)

// Permission grants a module-level capability with a list of finer-grained actions.
type Permission struct {
	Module  string   `json:"module"`
	Actions []string `json:"actions"`
}

// Child is a student record linked to a parent account.
type Child struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the client-side record of the authenticated user, as returned by the
// login endpoint and persisted to durable storage.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions,omitempty"` // absent for administrator roles
	SchoolSlug  string       `json:"schoolSlug"`
	Children    []Child      `json:"children,omitempty"` // linked students, parent role only
	Token       string       `json:"token"`
}

func (u User) IsSuperAdmin() bool {
	return strings.EqualFold(u.Role, RoleSuperAdmin)
}

func (u User) IsAdministrator() bool {
	return strings.EqualFold(u.Role, RoleAdministrator)
}

func (u User) IsParent() bool {
	return strings.EqualFold(u.Role, RoleParent)
}

// HasAllAccess reports whether the role grants implicit access to every module,
// bypassing the permission list entirely.
func (u User) HasAllAccess() bool {
	return u.IsAdministrator() || u.IsSuperAdmin()
}

// HasModule reports whether the permission list grants the given module.
// Matching is case-insensitive; malformed entries (empty module names) never match.
func (u User) HasModule(module string) bool {
	return u.findModule(module) != nil
}

// HasAction reports whether the given module grants an action whose name starts
// with sub, case-insensitively.
func (u User) HasAction(module, sub string) bool {
	perm := u.findModule(module)
	if perm == nil {
		return false
	}
	lsub := strings.ToLower(sub)
	for _, action := range perm.Actions {
		if strings.HasPrefix(strings.ToLower(action), lsub) {
			return true
		}
	}
	return false
}

func (u User) findModule(module string) *Permission {
	if module == "" {
		return nil
	}
	for i, perm := range u.Permissions {
		if perm.Module == "" {
			continue
		}
		if strings.EqualFold(perm.Module, module) {
			return &u.Permissions[i]
		}
	}
	return nil
}
