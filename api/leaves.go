package api

import (
	"context"
	"net/url"
	"time"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/rest"
)

// Leave request statuses as the backend reports them.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type (
	LeavesService struct {
		client *rest.Client
	}

	Leave struct {
		ID      string    `json:"id"`
		StaffID string    `json:"staff_id"`
		From    time.Time `json:"from"`
		To      time.Time `json:"to"`
		Reason  string    `json:"reason"`
		Status  string    `json:"status"`
	}

	NewLeave struct {
		From   time.Time `json:"from" validate:"required"`
		To     time.Time `json:"to" validate:"required,gtefield=From"`
		Reason string    `json:"reason" validate:"required"`
	}

	// LeaveReview approves or rejects a pending request.
	LeaveReview struct {
		Status  string `json:"status" validate:"required,oneof=approved rejected"`
		Comment string `json:"comment"`
	}
)

func NewLeavesService(client *rest.Client) *LeavesService {
	return &LeavesService{client: client}
}

func (s *LeavesService) List(ctx context.Context, status string) ([]Leave, error) {
	query := make(url.Values)
	if status != "" {
		query.Set("status", status)
	}

	var leaves []Leave
	if err := s.client.Get(ctx, "/api/leaves", query, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

func (s *LeavesService) Apply(ctx context.Context, data NewLeave) (Leave, error) {
	data.Reason = core.CleanString(data.Reason)
	if err := core.Validate.Struct(data); err != nil {
		return Leave{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var leave Leave
	if err := s.client.Post(ctx, "/api/leaves", data, &leave); err != nil {
		return Leave{}, err
	}
	return leave, nil
}

func (s *LeavesService) Review(ctx context.Context, id string, data LeaveReview) (Leave, error) {
	if err := core.Validate.Struct(data); err != nil {
		return Leave{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var leave Leave
	if err := s.client.Patch(ctx, "/api/leaves/"+id, data, &leave); err != nil {
		return Leave{}, err
	}
	return leave, nil
}
