package api

import (
	"context"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/rest"
)

type (
	AcademicService struct {
		client *rest.Client
	}

	Class struct {
		ID       string    `json:"id"`
		Name     string    `json:"name"`
		Sections []Section `json:"sections,omitempty"`
	}

	Section struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Subject struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Code    string `json:"code"`
		ClassID string `json:"class_id"`
	}

	NewClass struct {
		Name string `json:"name" validate:"required"`
	}

	NewSubject struct {
		Name    string `json:"name" validate:"required"`
		Code    string `json:"code" validate:"required,alphanum_"`
		ClassID string `json:"class_id" validate:"required"`
	}
)

func NewAcademicService(client *rest.Client) *AcademicService {
	return &AcademicService{client: client}
}

func (s *AcademicService) Classes(ctx context.Context) ([]Class, error) {
	var classes []Class
	if err := s.client.Get(ctx, "/api/academic/classes", nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *AcademicService) CreateClass(ctx context.Context, data NewClass) (Class, error) {
	data.Name = core.CleanString(data.Name)
	if err := core.Validate.Struct(data); err != nil {
		return Class{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var class Class
	if err := s.client.Post(ctx, "/api/academic/classes", data, &class); err != nil {
		return Class{}, err
	}
	return class, nil
}

func (s *AcademicService) Subjects(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := s.client.Get(ctx, "/api/academic/subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (s *AcademicService) CreateSubject(ctx context.Context, data NewSubject) (Subject, error) {
	data.Name = core.CleanString(data.Name)
	if err := core.Validate.Struct(data); err != nil {
		return Subject{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var subject Subject
	if err := s.client.Post(ctx, "/api/academic/subjects", data, &subject); err != nil {
		return Subject{}, err
	}
	return subject, nil
}
