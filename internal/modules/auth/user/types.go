package user

import "errors"

type RegisterDTO struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

var (
	errEmailTaken         = errors.New("user already exists")
	errInvalidCredentials = errors.New("invalid email or password")
	errUserNotFound       = errors.New("user not found")
)
