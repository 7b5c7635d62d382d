// Package api provides typed wrappers over the shared rest client for the
// backend endpoints the app consumes. Each service is a thin data layer:
// validate input where a form would, call an endpoint, decode the result.
package api

import "github.com/shulehub/shule/rest"

// Services bundles one instance of every endpoint service over a shared client.
type Services struct {
	Auth       *AuthService
	Students   *StudentsService
	Academic   *AcademicService
	Inventory  *InventoryService
	Leaves     *LeavesService
	Discipline *DisciplineService
	RBAC       *RBACService
	Uploads    *UploadsService
}

func New(client *rest.Client) *Services {
	return &Services{
		Auth:       NewAuthService(client),
		Students:   NewStudentsService(client),
		Academic:   NewAcademicService(client),
		Inventory:  NewInventoryService(client),
		Leaves:     NewLeavesService(client),
		Discipline: NewDisciplineService(client),
		RBAC:       NewRBACService(client),
		Uploads:    NewUploadsService(client),
	}
}
