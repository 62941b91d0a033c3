package contracts

import "Paydue/internal/domain/category"

type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Icon string `json:"icon" binding:"omitempty,max=50"`
	Kind string `json:"kind" binding:"omitempty,oneof=expense income receivable"`
}

type CategoryCreateResponse struct {
	Message  string             `json:"message"`
	Category *category.Category `json:"category"`
}

type CategoryUpdateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Icon string `json:"icon" binding:"omitempty,max=50"`
}

type CategorySingleResponse struct {
	Category *category.Category `json:"category"`
}
