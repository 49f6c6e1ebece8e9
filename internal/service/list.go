package service

import "github.com/reedu-reengineering-education/foodmission-backend/internal/pagination"

// ListResult is the envelope every list endpoint returns.
type ListResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func newListResult[T any](data []T, page pagination.Result) *ListResult[T] {
	return &ListResult[T]{
		Data:       data,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Take,
		TotalPages: page.TotalPages,
	}
}
