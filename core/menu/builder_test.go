package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core/session"
)

func staffUser(perms ...session.Permission) session.User {
	return session.User{
		ID:          "u-1",
		Name:        "Staff",
		Role:        "fees_clerk",
		Permissions: perms,
		SchoolSlug:  "greenfield",
	}
}

func sectionNames(sections []Section) []string {
	names := make([]string, 0, len(sections))
	for _, sec := range sections {
		names = append(names, sec.Name)
	}
	return names
}

func findSection(t *testing.T, sections []Section, name string) Section {
	t.Helper()
	for _, sec := range sections {
		if sec.Name == name {
			return sec
		}
	}
	t.Fatalf("section %q not visible", name)
	return Section{}
}

func countEntries(sections []Section) int {
	var n int
	for _, sec := range sections {
		for _, item := range sec.Items {
			if len(item.Sub) == 0 {
				n++
			}
			n += len(item.Sub)
		}
	}
	return n
}

func Test_Build_superadmin(t *testing.T) {
	usr := session.User{Role: session.RoleSuperAdmin}
	want := adminSections()

	// the administrative tree is fixed, whatever the permissions field holds
	assert.Equal(t, want, Build(usr))

	usr.Permissions = []session.Permission{{Module: "", Actions: nil}}
	assert.Equal(t, want, Build(usr))
}

func Test_Build_administrator(t *testing.T) {
	usr := session.User{Role: session.RoleAdministrator, SchoolSlug: "greenfield"}
	want := staffSections("greenfield")

	// implicit all-access: the full staff tree, nothing filtered
	assert.Equal(t, want, Build(usr))

	// all-access never consults the permission list, absent or malformed
	usr.Permissions = []session.Permission{{Module: "", Actions: nil}}
	assert.Equal(t, want, Build(usr))
}

func Test_Build_parent(t *testing.T) {
	usr := session.User{
		Role:       session.RoleParent,
		SchoolSlug: "greenfield",
		Children:   []session.Child{{ID: "st-1", Name: "Amani"}, {ID: "st-2"}},
	}

	sections := Build(usr)
	require.Len(t, sections, 1)

	items := sections[0].Items
	require.Len(t, items, 5)
	assert.Equal(t, "Child Profile", items[1].Name)
	assert.Equal(t, "/greenfield/students/st-1", items[1].Path, "first linked child wins")
}

func Test_Build_parentWithoutChildren(t *testing.T) {
	usr := session.User{Role: session.RoleParent, SchoolSlug: "greenfield"}

	sections := Build(usr)
	require.Len(t, sections, 1)

	items := sections[0].Items
	assert.Equal(t, "Child Profile", items[1].Name)
	assert.Equal(t, "/greenfield/dashboard", items[1].Path, "falls back to the tenant dashboard root")
}

func Test_Build_staffFeesGroupOnly(t *testing.T) {
	usr := staffUser(session.Permission{Module: "fees", Actions: []string{"Fees Group"}})

	sections := Build(usr)
	assert.Equal(t, []string{"Main", "Fees"}, sectionNames(sections))

	fees := findSection(t, sections, "Fees")
	require.Len(t, fees.Items, 1)
	require.Len(t, fees.Items[0].Sub, 1)
	assert.Equal(t, "Fees Group", fees.Items[0].Sub[0].Name)
}

func Test_Build_staffNoPermissions(t *testing.T) {
	sections := Build(staffUser())

	// everything except the dashboard filters away
	require.Len(t, sections, 1)
	assert.Equal(t, "Main", sections[0].Name)
	assert.Equal(t, "Dashboard", sections[0].Items[0].Name)
}

func Test_Build_caseInsensitiveMatching(t *testing.T) {
	usr := staffUser(session.Permission{Module: "FEES", Actions: []string{"fees group"}})

	fees := findSection(t, Build(usr), "Fees")
	require.Len(t, fees.Items[0].Sub, 1)
	assert.Equal(t, "Fees Group", fees.Items[0].Sub[0].Name)
}

func Test_Build_actionPrefixMatch(t *testing.T) {
	// a bare "Fees" action is a prefix of no sub-permission key here except
	// none; "Fees G" matches "Fees Group" only
	usr := staffUser(session.Permission{Module: "fees", Actions: []string{"Fees Group Details"}})

	fees := findSection(t, Build(usr), "Fees")
	sub := fees.Items[0].Sub
	require.Len(t, sub, 1)
	assert.Equal(t, "Fees Group", sub[0].Name, "action starting with the sub-key grants it")
}

func Test_Build_malformedPermissionsDeny(t *testing.T) {
	usr := staffUser(
		session.Permission{Module: "", Actions: []string{"Fees Group"}},
		session.Permission{Module: "fees"}, // no actions: module visible, no sub-keys
	)

	sections := Build(usr)
	assert.Equal(t, []string{"Main"}, sectionNames(sections), "malformed entries never grant visibility")
}

func Test_Build_leafModulePermission(t *testing.T) {
	usr := staffUser(session.Permission{Module: "discipline", Actions: []string{"Report"}})

	students := findSection(t, Build(usr), "Students")
	require.Len(t, students.Items, 1)
	assert.Equal(t, "Discipline", students.Items[0].Name)
	assert.Empty(t, students.Items[0].Sub)
}

func Test_Build_idempotent(t *testing.T) {
	usr := staffUser(
		session.Permission{Module: "fees", Actions: []string{"Fees Group", "Fees Type"}},
		session.Permission{Module: "inventory", Actions: []string{"Item"}},
	)

	assert.Equal(t, Build(usr), Build(usr))
}

func Test_Build_monotonicDenial(t *testing.T) {
	full := staffUser(session.Permission{Module: "fees", Actions: []string{"Fees Group", "Fees Type", "Fees Invoice"}})
	reduced := staffUser(session.Permission{Module: "fees", Actions: []string{"Fees Group", "Fees Invoice"}})

	fullCount := countEntries(Build(full))
	reducedCount := countEntries(Build(reduced))
	assert.Less(t, reducedCount, fullCount, "removing an action can only remove visibility")

	// and every remaining entry was already visible before
	fees := findSection(t, Build(reduced), "Fees")
	for _, sub := range fees.Items[0].Sub {
		assert.Contains(t, []string{"Fees Group", "Fees Invoice"}, sub.Name)
	}
}

func Test_Build_doesNotMutateDefinitions(t *testing.T) {
	usr := staffUser(session.Permission{Module: "fees", Actions: []string{"Fees Group"}})
	Build(usr)

	// the static definition must come back intact for the next caller
	admin := session.User{Role: session.RoleAdministrator, SchoolSlug: "greenfield"}
	fees := findSection(t, Build(admin), "Fees")
	assert.Len(t, fees.Items[0].Sub, 4)
}
