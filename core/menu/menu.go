// Package menu derives the navigation tree visible to a user from their role
// and permission list. Build is a pure function: it allocates a fresh tree on
// every call, keeps the static definition order and never caches, so role or
// permission changes are reflected on the next render without invalidation.
package menu

import (
	"github.com/shulehub/shule/core/session"
)

type (
	// SubItem is a leaf gated by a finer-grained action key within the parent
	// item's module.
	SubItem struct {
		Name       string
		Path       string
		Permission string // action prefix within the parent module; empty means always visible
	}

	// Item is a module-level menu entry, optionally carrying sub-items.
	Item struct {
		Name       string
		Icon       string
		Path       string
		Permission string // module key; empty means always visible
		Addon      bool
		Sub        []SubItem
	}

	// Section is a named group of items; empty sections are dropped.
	Section struct {
		Name  string
		Items []Item
	}
)

// Build returns the ordered list of sections visible to usr.
//
// Superadmins get the fixed administrative portal tree and parents a fixed
// parent portal, both unfiltered. Every other role is filtered item by item
// against the permission list; tenant administrators pass every check
// implicitly.
func Build(usr session.User) []Section {
	switch {
	case usr.IsSuperAdmin():
		return adminSections()
	case usr.IsParent():
		return parentSections(usr)
	default:
		return filterSections(usr, staffSections(usr.SchoolSlug))
	}
}

// allowed is the visibility predicate: implicit all-access for tenant
// super-roles, otherwise a case-insensitive module match, plus an action
// prefix match when a sub-permission key is required. Missing or malformed
// permission data is a deny, never a crash.
func allowed(usr session.User, module, sub string) bool {
	if module == "" {
		return true
	}
	if usr.HasAllAccess() {
		return true
	}
	if sub != "" {
		return usr.HasAction(module, sub)
	}
	return usr.HasModule(module)
}

func filterSections(usr session.User, sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, sec := range sections {
		items := make([]Item, 0, len(sec.Items))
		for _, item := range sec.Items {
			if vis, ok := filterItem(usr, item); ok {
				items = append(items, vis)
			}
		}
		if len(items) > 0 {
			out = append(out, Section{Name: sec.Name, Items: items})
		}
	}
	return out
}

// filterItem keeps an item with sub-items only when at least one sub-item
// survives; a leaf stands on its own module check.
func filterItem(usr session.User, item Item) (Item, bool) {
	if len(item.Sub) == 0 {
		return item, allowed(usr, item.Permission, "")
	}

	sub := make([]SubItem, 0, len(item.Sub))
	for _, si := range item.Sub {
		if allowed(usr, item.Permission, si.Permission) {
			sub = append(sub, si)
		}
	}
	if len(sub) == 0 {
		return Item{}, false
	}
	item.Sub = sub
	return item, true
}
