package stubapi

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shulehub/shule/api"
	"github.com/shulehub/shule/core/session"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "Shule-Demo-1!"

type (
	account struct {
		session.User
		passwordHash []byte
		disabled     bool
	}

	schoolData struct {
		students   []api.Student
		classes    []api.Class
		subjects   []api.Subject
		items      []api.InventoryItem
		categories []api.InventoryCategory
		leaves     []api.Leave
		incidents  []api.Incident
		roles      []api.Role
	}

	memDB struct {
		mu      sync.RWMutex
		users   map[string]*account    // by email
		schools map[string]*schoolData // by slug
	}
)

func (db *memDB) school(slug string) *schoolData {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.schools[slug]
}

func (db *memDB) findUser(email string) *account {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.users[strings.ToLower(email)]
}

func (db *memDB) findUserByID(id string) *account {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, acc := range db.users {
		if acc.ID == id {
			return acc
		}
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func bcryptCompare(hash []byte, pwd string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(pwd))
}

func hash(pwd string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("stubapi.hash: %v", err)
	}
	return h
}

// seedDB builds one demo school with an administrator, a fees clerk (custom
// staff role) and a parent, plus a platform superadmin.
func seedDB() *memDB {
	const slug = "greenfield"
	pwdHash := hash(DemoPassword)

	classID := newID()
	sectionID := newID()
	catID := newID()

	student1 := api.Student{
		ID:          newID(),
		AdmissionNo: "GF-0001",
		Name:        "Amani Otieno",
		ClassID:     classID,
		SectionID:   sectionID,
		AdmittedAt:  time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC),
	}
	student2 := api.Student{
		ID:          newID(),
		AdmissionNo: "GF-0002",
		Name:        "Neema Wanjiru",
		ClassID:     classID,
		AdmittedAt:  time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
	}

	feesRole := api.Role{
		ID:   newID(),
		Name: "fees_clerk",
		Permissions: []session.Permission{
			{Module: "fees", Actions: []string{"Fees Group", "Fees Invoice"}},
			{Module: "students", Actions: []string{"Student List"}},
		},
	}

	db := &memDB{
		users:   make(map[string]*account),
		schools: make(map[string]*schoolData),
	}

	db.schools[slug] = &schoolData{
		students: []api.Student{student1, student2},
		classes: []api.Class{
			{ID: classID, Name: "Form 1", Sections: []api.Section{{ID: sectionID, Name: "East"}}},
		},
		subjects: []api.Subject{
			{ID: newID(), Name: "Mathematics", Code: "MATH101", ClassID: classID},
		},
		categories: []api.InventoryCategory{{ID: catID, Name: "Stationery"}},
		items: []api.InventoryItem{
			{ID: newID(), Name: "Exercise Books", CategoryID: catID, Quantity: 500, UnitPrice: "0.40"},
		},
		roles: []api.Role{feesRole},
	}

	for _, usr := range []session.User{
		{
			ID:         newID(),
			Name:       "Platform Root",
			Email:      "root@shule.app",
			Role:       session.RoleSuperAdmin,
			SchoolSlug: "",
		},
		{
			ID:         newID(),
			Name:       "Grace Mwangi",
			Email:      "admin@greenfield.sc",
			Role:       session.RoleAdministrator,
			SchoolSlug: slug,
		},
		{
			ID:          newID(),
			Name:        "Kofi Mensah",
			Email:       "fees@greenfield.sc",
			Role:        feesRole.Name,
			Permissions: feesRole.Permissions,
			SchoolSlug:  slug,
		},
		{
			ID:         newID(),
			Name:       "Baba Amani",
			Email:      "parent@greenfield.sc",
			Role:       session.RoleParent,
			SchoolSlug: slug,
			Children:   []session.Child{{ID: student1.ID, Name: student1.Name}},
		},
	} {
		db.users[usr.Email] = &account{User: usr, passwordHash: pwdHash}
	}
	return db
}
