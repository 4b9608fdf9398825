package dto

import (
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// Category Request DTOs

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string  `json:"name" validate:"required,notblank,max=100"`
	Color *string `json:"color" validate:"omitempty,hex_color,max=20"`
	Icon  *string `json:"icon" validate:"omitempty,max=50"`
}

// UpdateCategoryRequest is a partial update; null clears color and icon.
type UpdateCategoryRequest struct {
	Name  Optional[string] `json:"name" validate:"omitempty,max=100"`
	Color Optional[string] `json:"color" validate:"omitempty,hex_color,max=20"`
	Icon  Optional[string] `json:"icon" validate:"omitempty,max=50"`
}

// HasChanges reports whether any field was supplied.
func (r *UpdateCategoryRequest) HasChanges() bool {
	return r.Name.Set || r.Color.Set || r.Icon.Set
}

// Category Response DTOs

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	Icon      *string   `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func NewCategoryListResponse(categories []models.Category) []CategoryResponse {
	response := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		response = append(response, NewCategoryResponse(&categories[i]))
	}
	return response
}
