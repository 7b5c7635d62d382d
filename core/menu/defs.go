package menu

import "github.com/shulehub/shule/core/session"

// Static menu definitions. Paths follow the URL convention: the first segment
// is the tenant slug, except on the administrative portal ("/admin") and the
// login page, which are reserved.

func adminSections() []Section {
	return []Section{
		{
			Name: "Platform",
			Items: []Item{
				{Name: "Dashboard", Icon: "dashboard", Path: "/admin/dashboard"},
				{Name: "Schools", Icon: "school", Path: "/admin/schools"},
				{Name: "Subscriptions", Icon: "card", Path: "/admin/subscriptions"},
				{Name: "Addons", Icon: "puzzle", Path: "/admin/addons"},
			},
		},
		{
			Name: "System",
			Items: []Item{
				{Name: "Settings", Icon: "settings", Path: "/admin/settings"},
				{Name: "CMS Content", Icon: "globe", Path: "/admin/cms"},
			},
		},
	}
}

// parentSections is the fixed parent portal; parents have no permission list.
// The child profile entry uses the first linked child and falls back to the
// tenant dashboard root when the account has no linked children.
func parentSections(usr session.User) []Section {
	root := "/" + usr.SchoolSlug
	childPath := root + "/dashboard"
	if len(usr.Children) > 0 {
		childPath = root + "/students/" + usr.Children[0].ID
	}
	return []Section{
		{
			Name: "Parent Portal",
			Items: []Item{
				{Name: "Dashboard", Icon: "dashboard", Path: root + "/dashboard"},
				{Name: "Child Profile", Icon: "student", Path: childPath},
				{Name: "Fees", Icon: "money", Path: root + "/fees/invoices"},
				{Name: "Homework", Icon: "book", Path: root + "/homework"},
				{Name: "Attendance", Icon: "calendar", Path: root + "/attendance"},
			},
		},
	}
}

func staffSections(slug string) []Section {
	root := "/" + slug
	return []Section{
		{
			Name: "Main",
			Items: []Item{
				{Name: "Dashboard", Icon: "dashboard", Path: root + "/dashboard"},
			},
		},
		{
			Name: "Academics",
			Items: []Item{
				{Name: "Academics", Icon: "book", Permission: "academic", Sub: []SubItem{
					{Name: "Classes", Path: root + "/academic/classes", Permission: "Class"},
					{Name: "Sections", Path: root + "/academic/sections", Permission: "Section"},
					{Name: "Subjects", Path: root + "/academic/subjects", Permission: "Subject"},
				}},
				{Name: "Examination", Icon: "clipboard", Permission: "examination", Sub: []SubItem{
					{Name: "Exam Schedule", Path: root + "/examination/schedule", Permission: "Exam Schedule"},
					{Name: "Marks Register", Path: root + "/examination/marks", Permission: "Marks"},
					{Name: "Grades", Path: root + "/examination/grades", Permission: "Grade"},
				}},
				{Name: "Homework", Icon: "pencil", Path: root + "/homework", Permission: "homework"},
			},
		},
		{
			Name: "Students",
			Items: []Item{
				{Name: "Students", Icon: "students", Permission: "students", Sub: []SubItem{
					{Name: "Admission", Path: root + "/students/admission", Permission: "Admission"},
					{Name: "Student List", Path: root + "/students", Permission: "Student List"},
					{Name: "Certificates", Path: root + "/students/certificates", Permission: "Certificate"},
				}},
				{Name: "Discipline", Icon: "shield", Path: root + "/discipline", Permission: "discipline"},
			},
		},
		{
			Name: "Fees",
			Items: []Item{
				{Name: "Fees", Icon: "money", Permission: "fees", Sub: []SubItem{
					{Name: "Fees Group", Path: root + "/fees/groups", Permission: "Fees Group"},
					{Name: "Fees Type", Path: root + "/fees/types", Permission: "Fees Type"},
					{Name: "Fees Invoice", Path: root + "/fees/invoices", Permission: "Fees Invoice"},
					{Name: "Fees Collection", Path: root + "/fees/collection", Permission: "Fees Collection"},
				}},
			},
		},
		{
			Name: "HR",
			Items: []Item{
				{Name: "Leave", Icon: "plane", Permission: "leaves", Sub: []SubItem{
					{Name: "Apply Leave", Path: root + "/leaves/apply", Permission: "Apply"},
					{Name: "Leave Requests", Path: root + "/leaves", Permission: "Review"},
				}},
				{Name: "Staff", Icon: "people", Path: root + "/staff", Permission: "staff"},
			},
		},
		{
			Name: "Resources",
			Items: []Item{
				{Name: "Inventory", Icon: "box", Permission: "inventory", Sub: []SubItem{
					{Name: "Items", Path: root + "/inventory/items", Permission: "Item"},
					{Name: "Categories", Path: root + "/inventory/categories", Permission: "Category"},
					{Name: "Issue Items", Path: root + "/inventory/issues", Permission: "Issue"},
				}},
			},
		},
		{
			Name: "Settings",
			Items: []Item{
				{Name: "Roles & Permissions", Icon: "lock", Path: root + "/settings/roles", Permission: "rbac"},
				{Name: "School Settings", Icon: "settings", Path: root + "/settings", Permission: "settings"},
				{Name: "Front CMS", Icon: "globe", Path: root + "/cms", Permission: "cms", Addon: true},
			},
		},
	}
}
