package api

import (
	"context"
	"time"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/rest"
)

type (
	DisciplineService struct {
		client *rest.Client
	}

	Incident struct {
		ID         string    `json:"id"`
		StudentID  string    `json:"student_id"`
		Title      string    `json:"title"`
		Details    string    `json:"details,omitempty"`
		OccurredAt time.Time `json:"occurred_at"`
	}

	NewIncident struct {
		StudentID  string    `json:"student_id" validate:"required"`
		Title      string    `json:"title" validate:"required"`
		Details    string    `json:"details"`
		OccurredAt time.Time `json:"occurred_at" validate:"required"`
	}
)

func NewDisciplineService(client *rest.Client) *DisciplineService {
	return &DisciplineService{client: client}
}

func (s *DisciplineService) List(ctx context.Context) ([]Incident, error) {
	var incidents []Incident
	if err := s.client.Get(ctx, "/api/discipline", nil, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

func (s *DisciplineService) Report(ctx context.Context, data NewIncident) (Incident, error) {
	data.Title = core.CleanString(data.Title)
	if err := core.Validate.Struct(data); err != nil {
		return Incident{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var incident Incident
	if err := s.client.Post(ctx, "/api/discipline", data, &incident); err != nil {
		return Incident{}, err
	}
	return incident, nil
}
