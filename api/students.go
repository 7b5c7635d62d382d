package api

import (
	"context"
	"net/url"
	"time"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/rest"
)

type (
	StudentsService struct {
		client *rest.Client
	}

	Student struct {
		ID          string    `json:"id"`
		AdmissionNo string    `json:"admission_no"`
		Name        string    `json:"name"`
		Email       string    `json:"email,omitempty"`
		ClassID     string    `json:"class_id"`
		SectionID   string    `json:"section_id,omitempty"`
		GuardianID  string    `json:"guardian_id,omitempty"`
		AdmittedAt  time.Time `json:"admitted_at"`
	}

	NewStudent struct {
		AdmissionNo string `json:"admission_no" validate:"required"`
		Name        string `json:"name" validate:"required"`
		Email       string `json:"email" validate:"omitempty,email"`
		ClassID     string `json:"class_id" validate:"required"`
		SectionID   string `json:"section_id"`
		GuardianID  string `json:"guardian_id"`
	}

	// StudentFilter narrows List; zero values are omitted from the query.
	StudentFilter struct {
		Search  string
		ClassID string
	}
)

func NewStudentsService(client *rest.Client) *StudentsService {
	return &StudentsService{client: client}
}

func (s *StudentsService) List(ctx context.Context, filter StudentFilter) ([]Student, error) {
	query := make(url.Values)
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.ClassID != "" {
		query.Set("class_id", filter.ClassID)
	}

	var students []Student
	if err := s.client.Get(ctx, "/api/students", query, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentsService) Get(ctx context.Context, id string) (Student, error) {
	var student Student
	if err := s.client.Get(ctx, "/api/students/"+id, nil, &student); err != nil {
		return Student{}, err
	}
	return student, nil
}

func (s *StudentsService) Create(ctx context.Context, data NewStudent) (Student, error) {
	data.Name = core.CleanString(data.Name)
	data.Email = core.CleanString(data.Email, true /* lower */)
	if err := core.Validate.Struct(data); err != nil {
		return Student{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var student Student
	if err := s.client.Post(ctx, "/api/students", data, &student); err != nil {
		return Student{}, err
	}
	return student, nil
}

func (s *StudentsService) Update(ctx context.Context, id string, data NewStudent) (Student, error) {
	var student Student
	if err := s.client.Put(ctx, "/api/students/"+id, data, &student); err != nil {
		return Student{}, err
	}
	return student, nil
}

func (s *StudentsService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/api/students/"+id)
}
