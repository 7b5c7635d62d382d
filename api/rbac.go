package api

import (
	"context"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/session"
	"github.com/shulehub/shule/rest"
)

type (
	RBACService struct {
		client *rest.Client
	}

	// Role is a named permission matrix the school assigns to staff accounts.
	Role struct {
		ID          string               `json:"id"`
		Name        string               `json:"name"`
		Permissions []session.Permission `json:"permissions"`
	}

	NewRole struct {
		Name        string               `json:"name" validate:"required,alphanum_"`
		Permissions []session.Permission `json:"permissions" validate:"required,min=1"`
	}
)

func NewRBACService(client *rest.Client) *RBACService {
	return &RBACService{client: client}
}

func (s *RBACService) Roles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := s.client.Get(ctx, "/api/school/rbac/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RBACService) Create(ctx context.Context, data NewRole) (Role, error) {
	data.Name = core.CleanString(data.Name)
	if err := core.Validate.Struct(data); err != nil {
		return Role{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var role Role
	if err := s.client.Post(ctx, "/api/school/rbac/roles", data, &role); err != nil {
		return Role{}, err
	}
	return role, nil
}

func (s *RBACService) Update(ctx context.Context, id string, data NewRole) (Role, error) {
	var role Role
	if err := s.client.Put(ctx, "/api/school/rbac/roles/"+id, data, &role); err != nil {
		return Role{}, err
	}
	return role, nil
}

func (s *RBACService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/api/school/rbac/roles/"+id)
}
