package product

import "errors"

type CreateDTO struct {
	Name        string  `json:"name"        binding:"required"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       binding:"required,gt=0"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateDTO struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"    binding:"omitempty,gt=0"`
	IsActive    *bool    `json:"isActive"`
}

var errProductNotFound = errors.New("product not found")
