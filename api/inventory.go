package api

import (
	"context"
	"net/url"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/rest"
)

type (
	InventoryService struct {
		client *rest.Client
	}

	InventoryItem struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		CategoryID string `json:"category_id"`
		Quantity   int    `json:"quantity"`
		UnitPrice  string `json:"unit_price"`
	}

	InventoryCategory struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	NewInventoryItem struct {
		Name       string `json:"name" validate:"required"`
		CategoryID string `json:"category_id" validate:"required"`
		Quantity   int    `json:"quantity" validate:"gte=0"`
		UnitPrice  string `json:"unit_price"`
	}
)

func NewInventoryService(client *rest.Client) *InventoryService {
	return &InventoryService{client: client}
}

func (s *InventoryService) Items(ctx context.Context, categoryID string) ([]InventoryItem, error) {
	query := make(url.Values)
	if categoryID != "" {
		query.Set("category_id", categoryID)
	}

	var items []InventoryItem
	if err := s.client.Get(ctx, "/api/inventory/items", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryService) CreateItem(ctx context.Context, data NewInventoryItem) (InventoryItem, error) {
	data.Name = core.CleanString(data.Name)
	if err := core.Validate.Struct(data); err != nil {
		return InventoryItem{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var item InventoryItem
	if err := s.client.Post(ctx, "/api/inventory/items", data, &item); err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

func (s *InventoryService) Categories(ctx context.Context) ([]InventoryCategory, error) {
	var categories []InventoryCategory
	if err := s.client.Get(ctx, "/api/inventory/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
