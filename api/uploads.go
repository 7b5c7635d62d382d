package api

import (
	"context"
	"io"

	"github.com/shulehub/shule/rest"
)

type (
	UploadsService struct {
		client *rest.Client
	}

	UploadResult struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
)

func NewUploadsService(client *rest.Client) *UploadsService {
	return &UploadsService{client: client}
}

// Document uploads a file attached to an owning record (student document,
// staff photo, ...); kind and ownerID travel as form fields beside the file.
func (s *UploadsService) Document(ctx context.Context, kind, ownerID, filename string, file io.Reader) (UploadResult, error) {
	fields := map[string]string{
		"kind":     kind,
		"owner_id": ownerID,
	}
	var res UploadResult
	if err := s.client.Upload(ctx, "/api/uploads", "file", filename, file, fields, &res); err != nil {
		return UploadResult{}, err
	}
	return res, nil
}
